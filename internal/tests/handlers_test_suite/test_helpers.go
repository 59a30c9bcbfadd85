package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ditservices/asset-tracker/internal/auth"
	api "github.com/ditservices/asset-tracker/internal/http"
	handler "github.com/ditservices/asset-tracker/internal/http/handlers"
	rl "github.com/ditservices/asset-tracker/internal/http/rate_limiter"
	"github.com/ditservices/asset-tracker/internal/jobs"
	"github.com/ditservices/asset-tracker/internal/models"
	"github.com/ditservices/asset-tracker/internal/repo"
	"github.com/ditservices/asset-tracker/internal/storage"
	"github.com/ditservices/asset-tracker/internal/ws"
)

var (
	adminToken     string
	employeeToken  string
	productRepo    *repo.InMemoryProductRepository
	saleRepo       *repo.InMemorySaleRepository
	userRepo       *repo.InMemoryUserRepository
	activityRepo   *repo.InMemoryActivityLogRepository
	attachmentRepo *repo.InMemoryAttachmentRepository
	tokenRepo      *repo.InMemoryTokenRepository
	windowStore    *rl.MemoryWindowStore
	alertsHub      *ws.Hub
)

const testPassword = "secret-pass"

func init() {
	setupTestRepos(testPassword)
	r := newRouter()

	var err error
	adminToken, err = generateToken(r, "admin@example.com", testPassword)
	if err != nil {
		panic(fmt.Sprintf("error generating admin token: %v", err))
	}
	employeeToken, err = generateToken(r, "employee@example.com", testPassword)
	if err != nil {
		panic(fmt.Sprintf("error generating employee token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	saleRepo = repo.NewInMemorySaleRepository()
	saleRepo.SetProductRepository(productRepo)
	productRepo.SetSaleRepository(saleRepo)
	handler.SetSaleRepo(saleRepo)

	userRepo = repo.NewInMemoryUserRepository()
	userRepo.SetSaleRepository(saleRepo)
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.Create(models.User{
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
	userRepo.Create(models.User{
		Name:         "Employee",
		Email:        "employee@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleEmployee,
	})

	metricsRepo := repo.NewInMemoryMetricsRepository()
	metricsRepo.SetRepositories(productRepo, saleRepo)
	handler.SetMetricsRepo(metricsRepo)

	activityRepo = repo.NewInMemoryActivityLogRepository()
	handler.SetActivityLogRepo(activityRepo)

	attachmentRepo = repo.NewInMemoryAttachmentRepository()
	handler.SetAttachmentRepo(attachmentRepo)

	tokenRepo = repo.NewInMemoryTokenRepository()
	authService := auth.NewService("test-secret", tokenRepo)
	handler.SetAuthService(authService)
	api.SetAuthService(authService)

	store, err := storage.NewDiskStore(os.TempDir(), "http://localhost:8080")
	if err != nil {
		panic(err)
	}
	handler.SetDiskStore(store)

	alertsHub = ws.NewHub()
	handler.SetAlertsHub(alertsHub)

	queue := jobs.NewQueue(8)
	queue.Start(1)
	handler.SetJobQueue(queue)

	windowStore = rl.NewMemoryWindowStore()
}

func newRouter() http.Handler {
	limiter := rl.NewFixedWindowLimiter(windowStore, 100, time.Minute)
	return api.NewRouter(limiter, alertsHub, os.TempDir())
}

func clearAllProducts() {
	productRepo.Clear()
	saleRepo.Clear()
}

// loginIPSeq spreads logins over distinct client addresses so the per-IP
// login throttle never interferes with unrelated tests.
var loginIPSeq atomic.Int32

func generateToken(r http.Handler, email, password string) (string, error) {
	payload := handler.UserLogin{Email: email, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.9.0.%d", loginIPSeq.Add(1)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func laptopRequest(name, sku, serial string) handler.ProductRequest {
	specs, _ := json.Marshal(map[string]any{
		"cpu":              "Apple M3",
		"ram_size":         "16GB",
		"storage_capacity": "512GB",
	})
	return handler.ProductRequest{
		Name:           name,
		Category:       "laptop",
		SKU:            sku,
		SerialNumber:   serial,
		Brand:          "Apple",
		Model:          "MacBook Pro 14",
		Condition:      "new",
		Specifications: specs,
	}
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products", p, adminToken)
}

func recordSale(r http.Handler, s handler.SaleRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/sales", s, adminToken)
}

func doJSON(r http.Handler, method, path string, payload any, token string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
