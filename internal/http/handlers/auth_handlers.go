package handlers

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ditservices/asset-tracker/internal/activity"
	"github.com/ditservices/asset-tracker/internal/auth"
	"github.com/ditservices/asset-tracker/internal/http/rate_limiter"
	"github.com/ditservices/asset-tracker/internal/repo"
)

// currentClaims resolves the caller identity from the bearer token. Routes
// behind the auth middleware always have a valid one.
func currentClaims(r *http.Request) (auth.Claims, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return auth.Claims{}, auth.ErrMissingToken
	}
	return authService.Validate(strings.TrimPrefix(header, "Bearer "))
}

// HealthHandler godoc
// @Summary Health check
// @Tags health
// @Success 200 {string} string "ok"
// @Router /up [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// LoginHandler godoc
// @Summary Authenticate and return a JWT token with the user profile
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body UserLogin true "email and password"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string "Invalid credentials"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	ip := clientAddr(r)
	if !rate_limiter.GetVisitor(ip).Allow() {
		http.Error(w, "too many login attempts", http.StatusTooManyRequests)
		return
	}

	var creds UserLogin
	if err := readJSON(w, r, &creds); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByEmail(creds.Email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "could not authenticate", http.StatusInternalServerError)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := authService.Issue(user)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	auditLog.Record(r, user.ID, activity.ActionLogin, "user", user.ID, nil, nil)

	writeJSON(w, http.StatusOK, LoginResult{Token: token, User: user})
}

// LogoutHandler godoc
// @Summary Revoke the presented token
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {string} string "Unauthorized"
// @Router /logout [delete]
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := currentClaims(r)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := authService.Revoke(token); err != nil {
		http.Error(w, "could not revoke token", http.StatusInternalServerError)
		return
	}

	auditLog.Record(r, claims.UserID, activity.ActionLogout, "user", claims.UserID, nil, nil)

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	return r.RemoteAddr
}
