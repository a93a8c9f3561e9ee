package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"painel-conto/internal/auth"
	"painel-conto/internal/cache"
	"painel-conto/internal/models"
	"painel-conto/internal/repositories"
)

var ErrInvalidRole = errors.New("unknown role")

type UserService struct {
	Repo       *repositories.UserRepository
	PermRepo   *repositories.PermissionRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, permRepo *repositories.PermissionRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		PermRepo:   permRepo,
		JWTManager: jwtManager,
	}
}

// Signup creates a new user with hashed password. The account starts with no
// role; an admin grants one afterwards.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errors.New("name, email, and password are required")
	}

	existing, _ := s.Repo.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user, "")
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, User: user}, nil
}

// Login authenticates a user and returns a JWT token. Successful credentials
// are cached in redis so repeated logins skip the bcrypt compare.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	if cachedID, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); ok {
		if id, err := uuid.Parse(cachedID); err == nil {
			if user, err := s.Repo.Get(ctx, id); err == nil {
				return s.issueToken(ctx, user)
			}
		}
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, errors.New("invalid email or password")
	}

	cache.CacheAuth(ctx, req.Email, req.Password, user.ID.String())
	return s.issueToken(ctx, user)
}

func (s *UserService) issueToken(ctx context.Context, user *models.User) (*models.LoginResponse, error) {
	role, err := s.PermRepo.GetRole(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	token, err := s.JWTManager.GenerateToken(user, role)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// ListProfiles returns every user joined with role and permission grants for
// the admin screens.
func (s *UserService) ListProfiles(ctx context.Context) ([]*models.UserProfile, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]*models.UserProfile, 0, len(users))
	for _, u := range users {
		role, err := s.PermRepo.GetRole(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		modules, spaces, err := s.PermRepo.GetPermissions(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, &models.UserProfile{
			ID:             u.ID,
			Email:          u.Email,
			Name:           u.Name,
			Role:           role,
			AllowedModules: modules,
			AllowedSpaces:  spaces,
		})
	}
	return profiles, nil
}

// SetRole assigns one of the known roles to a user.
func (s *UserService) SetRole(ctx context.Context, userID uuid.UUID, role string) error {
	switch role {
	case models.RoleAdmin, models.RoleGestor, models.RoleComercial, models.RoleAnalista:
	default:
		return ErrInvalidRole
	}
	return s.PermRepo.SetRole(ctx, userID, role)
}

// SetPermissions replaces a user's module and space grants.
func (s *UserService) SetPermissions(ctx context.Context, userID uuid.UUID, modules, spaces []string) error {
	return s.PermRepo.SetPermissions(ctx, userID, modules, spaces)
}

// CanAccessSpace reports whether the user may read or write data in a space.
// Admins see every space.
func (s *UserService) CanAccessSpace(ctx context.Context, userID uuid.UUID, spaceID string) (bool, error) {
	role, err := s.PermRepo.GetRole(ctx, userID)
	if err != nil {
		return false, err
	}
	if role == models.RoleAdmin {
		return true, nil
	}
	_, spaces, err := s.PermRepo.GetPermissions(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, s := range spaces {
		if s == spaceID {
			return true, nil
		}
	}
	return false, nil
}

// CanAccessModule reports whether the user may open an application module.
func (s *UserService) CanAccessModule(ctx context.Context, userID uuid.UUID, module string) (bool, error) {
	role, err := s.PermRepo.GetRole(ctx, userID)
	if err != nil {
		return false, err
	}
	if role == models.RoleAdmin {
		return true, nil
	}
	modules, _, err := s.PermRepo.GetPermissions(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, m := range modules {
		if m == module {
			return true, nil
		}
	}
	return false, nil
}
