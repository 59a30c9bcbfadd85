package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	handler "github.com/ditservices/asset-tracker/internal/http/handlers"
	"github.com/ditservices/asset-tracker/internal/models"
)

func TestUserHandlers_AdminOnly(t *testing.T) {
	r := newRouter()

	w := doJSON(r, http.MethodGet, "/users", nil, employeeToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for employee, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/users", nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}

func TestCreateUserHandler(t *testing.T) {
	r := newRouter()

	w := doJSON(r, http.MethodPost, "/users", handler.UserRequest{
		Name:     "New Hire",
		Email:    "hire@example.com",
		Password: "hunter2-long",
		Role:     "employee",
	}, adminToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created models.User
	json.NewDecoder(w.Body).Decode(&created)
	if created.Role != models.RoleEmployee {
		t.Errorf("expected employee role, got %v", created.Role)
	}

	// Email uniqueness is case-insensitive.
	w = doJSON(r, http.MethodPost, "/users", handler.UserRequest{
		Name:     "Duplicate",
		Email:    "HIRE@example.com",
		Password: "hunter2-long",
	}, adminToken)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", w.Code)
	}

	doJSON(r, http.MethodDelete, fmt.Sprintf("/users/%d", created.ID), nil, adminToken)
}

func TestCreateUserHandler_Invalid(t *testing.T) {
	r := newRouter()

	w := doJSON(r, http.MethodPost, "/users", handler.UserRequest{
		Name:     "",
		Email:    "not-an-email",
		Password: "x",
		Role:     "overlord",
	}, adminToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var errs []handler.ProductValidationError
	json.NewDecoder(w.Body).Decode(&errs)
	got := map[string]bool{}
	for _, e := range errs {
		got[e.Field] = true
	}
	for _, field := range []string{"name", "email", "password", "role"} {
		if !got[field] {
			t.Errorf("expected a validation error for %q", field)
		}
	}
}

func TestDeleteUserHandler_CannotDeleteOwnAccount(t *testing.T) {
	r := newRouter()

	admin, err := userRepo.GetByEmail("admin@example.com")
	if err != nil {
		t.Fatalf("admin lookup failed: %v", err)
	}

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/users/%d", admin.ID), nil, adminToken)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 deleting own account, got %d", w.Code)
	}
}

func TestDeleteUserHandler_UserWithSalesIsKept(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := doJSON(r, http.MethodPost, "/users", handler.UserRequest{
		Name:     "Seller",
		Email:    "seller@example.com",
		Password: "hunter2-long",
	}, adminToken)
	var seller models.User
	json.NewDecoder(w.Body).Decode(&seller)

	sellerToken, err := generateToken(r, "seller@example.com", "hunter2-long")
	if err != nil {
		t.Fatalf("seller login failed: %v", err)
	}

	id := createProductID(t, r, "DIT-950", "SN-950")
	if w := doJSON(r, http.MethodPost, "/sales", handler.SaleRequest{ProductID: id, SoldTo: "Acme", SalePrice: 10}, sellerToken); w.Code != http.StatusCreated {
		t.Fatalf("sale failed: %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/users/%d", seller.ID), nil, adminToken)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 deleting a user with sales, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateUserHandler_PromoteRole(t *testing.T) {
	r := newRouter()

	w := doJSON(r, http.MethodPost, "/users", handler.UserRequest{
		Name:     "Promotee",
		Email:    "promotee@example.com",
		Password: "hunter2-long",
	}, adminToken)
	var user models.User
	json.NewDecoder(w.Body).Decode(&user)

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/users/%d", user.ID), handler.UserRequest{
		Name:  "Promotee",
		Email: "promotee@example.com",
		Role:  "admin",
	}, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.User
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Role != models.RoleAdmin {
		t.Errorf("expected admin role after promotion, got %v", updated.Role)
	}

	doJSON(r, http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), nil, adminToken)
}
