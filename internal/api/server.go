package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/edvin/tradelink/internal/api/handler"
	mw "github.com/edvin/tradelink/internal/api/middleware"
	"github.com/edvin/tradelink/internal/config"
	"github.com/edvin/tradelink/internal/core"
	"github.com/edvin/tradelink/internal/uploader"
)

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	pool     *pgxpool.Pool
	cfg      *config.Config
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, uploads *uploader.Service, cfg *config.Config) *Server {
	services := core.NewServices(pool, cfg.JWTSecret, cfg.JWTIssuer)

	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: services,
		pool:     pool,
		cfg:      cfg,
	}

	s.setupMiddleware()
	s.setupRoutes(uploads)

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(chimw.Recoverer)
	s.router.Use(mw.Metrics)
	s.router.Use(mw.CORS(s.cfg.CORSOrigins))
}

func (s *Server) setupRoutes(uploads *uploader.Service) {
	// Health checks
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	auth := handler.NewAuth(s.services.Auth)
	product := handler.NewProduct(s.services.Product, s.services.Profile)
	category := handler.NewCategory(s.services.Category)
	supplier := handler.NewSupplier(s.services.Profile, s.services.Product)
	me := handler.NewMe(s.services.Profile)
	inquiry := handler.NewInquiry(s.services.Inquiry, s.services.Profile)
	upload := handler.NewUpload(uploads)

	s.router.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", auth.Register)
		r.Post("/auth/login", auth.Login)

		r.Get("/products", product.List)
		r.Get("/products/{productID}", product.Get)
		r.Get("/categories", category.List)
		r.Get("/suppliers/{supplierID}", supplier.Get)
		r.Get("/suppliers/{supplierID}/products", supplier.Products)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(s.services.Auth))

			r.Get("/me", me.Get)
			r.Get("/me/products", product.ListMine)

			r.Post("/products", product.Create)

			r.Post("/upload", upload.Single)
			r.Post("/upload/batch", upload.Batch)

			r.Post("/inquiries", inquiry.Create)
			r.Get("/inquiries", inquiry.List)
			r.Get("/inquiries/{inquiryID}/responses", inquiry.Responses)
			r.Post("/inquiries/{inquiryID}/responses", inquiry.Respond)
		})
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
