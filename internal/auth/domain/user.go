package domain

import "time"

// User is the locally persisted identity, uniquely keyed by
// (provider, provider_id). It is created by the identity bridge on the first
// successful callback for that key and never mutated elsewhere.
type User struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Provider   string    `json:"provider" gorm:"uniqueIndex:idx_provider_identity;not null"`
	ProviderID string    `json:"provider_id" gorm:"uniqueIndex:idx_provider_identity;not null"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
