// Package auth issues and validates the bearer credentials behind every
// authenticated route. Revoked tokens are tracked by sha256 digest until
// their natural expiry.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ditservices/asset-tracker/internal/models"
	"github.com/ditservices/asset-tracker/internal/repo"
)

var (
	ErrMissingToken   = errors.New("missing token")
	ErrMalformedToken = errors.New("malformed token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrRevokedToken   = errors.New("token has been revoked")
)

const TokenTTL = 24 * time.Hour

// Claims is the decoded, validated content of a token.
type Claims struct {
	UserID    int
	Email     string
	Role      models.Role
	TokenID   string
	ExpiresAt time.Time
}

type Service struct {
	secret []byte
	tokens repo.TokenRepository
}

func NewService(secret string, tokens repo.TokenRepository) *Service {
	return &Service{secret: []byte(secret), tokens: tokens}
}

// Issue builds a signed token for the user with a 24h expiry and a unique
// token identifier.
func (s *Service) Issue(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role.String(),
		"exp":   time.Now().Add(TokenTTL).Unix(),
		"jti":   uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate decodes the token and checks signature, expiry, and the revocation
// blacklist.
func (s *Service) Validate(tokenStr string) (Claims, error) {
	if tokenStr == "" {
		return Claims{}, ErrMissingToken
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrMalformedToken
	}

	revoked, err := s.tokens.IsBlacklisted(Digest(tokenStr))
	if err != nil {
		return Claims{}, fmt.Errorf("blacklist lookup: %w", err)
	}
	if revoked {
		return Claims{}, ErrRevokedToken
	}

	return claimsFromToken(token)
}

// Revoke blacklists the token's digest with the token's original expiry so
// cleanup can later purge the entry. Revoking an empty token is a no-op.
func (s *Service) Revoke(tokenStr string) error {
	if tokenStr == "" {
		return nil
	}

	// Validation is skipped so an already-expired token can still be revoked
	// without surprising the caller.
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, _, err := parser.ParseUnverified(tokenStr, jwt.MapClaims{})
	if err != nil {
		return ErrMalformedToken
	}

	expiresAt := time.Now().Add(TokenTTL)
	if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}
	return s.tokens.Blacklist(Digest(tokenStr), expiresAt)
}

// Digest is the blacklist key for a raw token.
func Digest(tokenStr string) string {
	sum := sha256.Sum256([]byte(tokenStr))
	return hex.EncodeToString(sum[:])
}

func claimsFromToken(token *jwt.Token) (Claims, error) {
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrMalformedToken
	}

	sub, ok := mapClaims["sub"].(float64)
	if !ok {
		return Claims{}, ErrMalformedToken
	}

	claims := Claims{UserID: int(sub)}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if roleStr, ok := mapClaims["role"].(string); ok {
		if role, err := models.ParseRole(roleStr); err == nil {
			claims.Role = role
		}
	}
	if jti, ok := mapClaims["jti"].(string); ok {
		claims.TokenID = jti
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
