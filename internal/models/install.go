package models

import (
	"time"
)

// Install — установка приложения в одном портале HubSpot.
// Токены никогда не сериализуются наружу.
type Install struct {
	ID           int       `json:"id"`
	PortalID     int64     `json:"portal_id"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (i *Install) Expired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}
