package models

import "time"

// Space is the tenant partition. Every lead, client and objective belongs to
// exactly one space, and user access is governed by a per-user allow-list of
// space ids (admins are unrestricted).
type Space struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateSpaceRequest struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Color       string `json:"color"`
}
