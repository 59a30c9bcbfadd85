package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/ditservices/asset-tracker/internal/http/handlers"
	"github.com/ditservices/asset-tracker/internal/http/rate_limiter"
	"github.com/ditservices/asset-tracker/internal/ws"
)

// NewRouter builds the full route table. The public API group runs behind
// the shared rate limiter; everything under the authenticated group requires
// a valid bearer token, and destructive routes additionally require admin.
func NewRouter(limiter *rate_limiter.FixedWindowLimiter, hub *ws.Hub, uploadDir string) http.Handler {
	r := chi.NewRouter()

	r.Get("/up", handlers.HealthHandler)
	r.Post("/login", handlers.LoginHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware(limiter))
		r.Get("/api/v1/products", handlers.APIProductsHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Delete("/logout", handlers.LogoutHandler)
		r.Get("/ws/alerts", hub.ServeHTTP)

		r.Get("/products", handlers.GetProductsHandler)
		r.Post("/products", handlers.CreateProductHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Post("/products/{id}/images", handlers.UploadProductImageHandler)
		r.Delete("/products/{id}/images/{imageID}", handlers.DeleteProductImageHandler)

		r.Get("/sales", handlers.GetSalesHandler)
		r.Post("/sales", handlers.CreateSaleHandler)
		r.Get("/sales/{id}", handlers.GetSaleByIDHandler)

		r.Get("/dashboard", handlers.DashboardHandler)

		r.Group(func(r chi.Router) {
			r.Use(AdminOnly)

			r.Delete("/products/{id}", handlers.DeleteProductHandler)
			r.Post("/dashboard/clear_cache", handlers.ClearDashboardCacheHandler)
			r.Get("/activity_logs", handlers.GetActivityLogsHandler)

			r.Get("/users", handlers.GetUsersHandler)
			r.Post("/users", handlers.CreateUserHandler)
			r.Get("/users/{id}", handlers.GetUserByIDHandler)
			r.Put("/users/{id}", handlers.UpdateUserHandler)
			r.Delete("/users/{id}", handlers.DeleteUserHandler)
		})
	})

	return r
}
