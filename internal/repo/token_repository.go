package repo

import "time"

// TokenRepository tracks revoked credential digests until natural expiry.
type TokenRepository interface {
	// Blacklist stores a digest with the token's original expiry. Blacklisting
	// an already-revoked digest is a no-op.
	Blacklist(digest string, expiresAt time.Time) error
	IsBlacklisted(digest string) (bool, error)
	// PurgeExpired removes entries whose expiry has passed and reports how
	// many were deleted.
	PurgeExpired(now time.Time) (int, error)
}
