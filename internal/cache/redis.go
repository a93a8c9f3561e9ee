package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache key builders. List caches are scoped per space so invalidation on a
// write in one space never touches another tenant's data.
const (
	SpaceListKey  = "spaces:list"
	LeadsKeyFmt   = "leads:%s"
	ClientsKeyFmt = "clients:%s"
	ObjectivesFmt = "objectives:%s"
	DashboardFmt  = "dashboard:%s"
)

func LeadsKey(spaceID string) string      { return fmt.Sprintf(LeadsKeyFmt, spaceID) }
func ClientsKey(spaceID string) string    { return fmt.Sprintf(ClientsKeyFmt, spaceID) }
func ObjectivesKey(spaceID string) string { return fmt.Sprintf(ObjectivesFmt, spaceID) }
func DashboardKey(spaceID string) string  { return fmt.Sprintf(DashboardFmt, spaceID) }

var client *redis.Client

// Init initializes the Redis connection
func Init() error {
	// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (string, bool) {
	if client == nil {
		return "", false
	}
	key := hashCredentials(email, password)
	userID, err := client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password, userID string) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Set(ctx, key, userID, 15*time.Minute)
}

// ============================================
// Generic Cache Functions
// ============================================

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// ============================================
// Cache Invalidation Functions
// ============================================

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateLeadCaches clears lead-related caches for one space.
// Called when: CreateLead, UpdateLead, MoveLead, DeleteLead
func InvalidateLeadCaches(ctx context.Context, spaceID string) {
	// Commercial objectives derive their value from won leads, so the
	// objectives cache goes stale too.
	InvalidateKeys(ctx, LeadsKey(spaceID), ObjectivesKey(spaceID), DashboardKey(spaceID))
}

// InvalidateClientCaches clears client-related caches for one space.
// Called when: CreateClient, UpdateClient, DeleteClient, UpsertNPS, DeleteNPS
func InvalidateClientCaches(ctx context.Context, spaceID string) {
	InvalidateKeys(ctx, ClientsKey(spaceID), ObjectivesKey(spaceID), DashboardKey(spaceID))
}

// InvalidateObjectiveCaches clears objective caches for one space.
// Called when: CreateObjective, UpdateObjective, DeleteObjective, progress log writes
func InvalidateObjectiveCaches(ctx context.Context, spaceID string) {
	InvalidateKeys(ctx, ObjectivesKey(spaceID), DashboardKey(spaceID))
}

// InvalidateSpaceCaches clears the space list cache.
// Called when: CreateSpace, DeleteSpace
func InvalidateSpaceCaches(ctx context.Context) {
	InvalidateKeys(ctx, SpaceListKey)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
