package models

import "time"

// BlacklistedToken marks a revoked credential by digest until its natural
// expiry, after which a periodic cleanup removes the row.
type BlacklistedToken struct {
	ID          int       `json:"id"`
	TokenDigest string    `json:"token_digest"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}
