package handler

import (
	"net/http"
	"path/filepath"

	"alfaraz/spareparts/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handler struct {
	router   *chi.Mux
	log      *zap.Logger
	validate *validator.Validate

	auth     *service.AuthService
	catalog  *service.CatalogService
	checkout *service.CheckoutService
	orders   *service.OrderService
}

func NewHandler(log *zap.Logger, auth *service.AuthService, catalog *service.CatalogService,
	checkout *service.CheckoutService, orders *service.OrderService, frontendDir string) *Handler {

	h := &Handler{
		router:   chi.NewRouter(),
		log:      log,
		validate: validator.New(),
		auth:     auth,
		catalog:  catalog,
		checkout: checkout,
		orders:   orders,
	}

	// Middleware
	h.router.Use(RequestLogger(log))
	h.router.Use(middleware.Recoverer)
	// The frontend is served from a different origin, so the API answers
	// cross-origin requests permissively.
	h.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))
	h.router.Use(Compress)

	h.registerRoutes(frontendDir)
	return h
}

func (h *Handler) registerRoutes(frontendDir string) {
	h.router.Post("/user/signup", h.Signup)
	h.router.Post("/user/login", h.UserLogin)
	h.router.Post("/admin/login", h.AdminLogin)

	h.router.Route("/parts", func(r chi.Router) {
		r.Get("/", h.ListParts)
		r.Post("/", h.CreatePart)
		r.Put("/{id}", h.UpdatePart)
		r.Delete("/{id}", h.DeletePart)
	})

	h.router.Post("/cart/checkout", h.Checkout)
	h.router.Get("/orders", h.AllOrders)
	h.router.Get("/orders/{userID}", h.UserOrders)

	h.router.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
	})

	// Static frontend, when configured. The login page doubles as the root.
	if frontendDir != "" {
		h.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, filepath.Join(frontendDir, "login.html"))
		})
		h.router.Method(http.MethodGet, "/*", http.FileServer(http.Dir(frontendDir)))
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
