package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ditservices/asset-tracker/internal/activity"
	"github.com/ditservices/asset-tracker/internal/models"
	"github.com/ditservices/asset-tracker/internal/repo"
)

func validateUser(req UserRequest, requirePassword bool) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "name", Description: "name is required"})
	}
	if !strings.Contains(req.Email, "@") {
		errs = append(errs, ProductValidationError{Field: "email", Description: "a valid email is required"})
	}
	if (requirePassword || req.Password != "") && len(req.Password) < 6 {
		errs = append(errs, ProductValidationError{Field: "password", Description: "password must be at least 6 characters"})
	}
	if req.Role != "" {
		if _, err := models.ParseRole(req.Role); err != nil {
			errs = append(errs, ProductValidationError{Field: "role", Description: "unknown role"})
		}
	}
	return errs
}

// CreateUserHandler godoc
// @Summary Create a user account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body UserRequest true "User to create"
// @Success 201 {object} models.User
// @Failure 409 {string} string "Email already in use"
// @Router /users [post]
func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if errs := validateUser(req, true); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashed),
	}
	if req.Role != "" {
		user.Role, _ = models.ParseRole(req.Role)
	}

	created, err := userRepo.Create(user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "email already in use", http.StatusConflict)
			return
		}
		http.Error(w, "could not create user", http.StatusInternalServerError)
		return
	}

	claims, _ := currentClaims(r)
	auditLog.Record(r, claims.UserID, activity.ActionCreate, "user", created.ID, nil, created)

	writeJSON(w, http.StatusCreated, created)
}

// GetUsersHandler godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Router /users [get]
func GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := userRepo.GetAll()
	if err != nil {
		http.Error(w, "could not retrieve users", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// GetUserByIDHandler godoc
// @Summary Get a user by their id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {string} string "User not found"
// @Router /users/{id} [get]
func GetUserByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not retrieve user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateUserHandler godoc
// @Summary Update a user account
// @Description An empty password keeps the current one.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param user body UserRequest true "New user values"
// @Success 200 {object} models.User
// @Failure 404 {string} string "User not found"
// @Failure 409 {string} string "Email already in use"
// @Router /users/{id} [put]
func UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	existing, err := userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not retrieve user", http.StatusInternalServerError)
		return
	}

	var req UserRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if errs := validateUser(req, false); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	user := existing
	user.Name = strings.TrimSpace(req.Name)
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Role != "" {
		user.Role, _ = models.ParseRole(req.Role)
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "failed to hash password", http.StatusInternalServerError)
			return
		}
		user.PasswordHash = string(hashed)
	}

	updated, err := userRepo.Update(user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "email already in use", http.StatusConflict)
			return
		}
		http.Error(w, "could not update user", http.StatusInternalServerError)
		return
	}

	claims, _ := currentClaims(r)
	auditLog.Record(r, claims.UserID, activity.ActionUpdate, "user", updated.ID, existing, updated)

	writeJSON(w, http.StatusOK, updated)
}

// DeleteUserHandler godoc
// @Summary Delete a user account
// @Description Admins cannot delete their own account. Users with recorded sales cannot be deleted.
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204 {string} string "No content"
// @Failure 404 {string} string "User not found"
// @Failure 409 {string} string "User has recorded sales"
// @Failure 422 {string} string "Cannot delete own account"
// @Router /users/{id} [delete]
func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	claims, _ := currentClaims(r)
	if claims.UserID == id {
		http.Error(w, "cannot delete your own account", http.StatusUnprocessableEntity)
		return
	}

	existing, err := userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not retrieve user", http.StatusInternalServerError)
		return
	}

	if err := userRepo.Delete(id); err != nil {
		switch {
		case errors.Is(err, repo.ErrUserNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrHasDependentSale):
			http.Error(w, "user has recorded sales and cannot be deleted", http.StatusConflict)
		default:
			http.Error(w, "could not delete user", http.StatusInternalServerError)
		}
		return
	}

	auditLog.Record(r, claims.UserID, activity.ActionDelete, "user", id, existing, nil)

	w.WriteHeader(http.StatusNoContent)
}
