package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"cerveceria-pos/internal/config"
	custommiddleware "cerveceria-pos/internal/middleware"
	"cerveceria-pos/internal/notify"
	"cerveceria-pos/internal/render"
	"cerveceria-pos/internal/repository"
	"cerveceria-pos/internal/service"
	"cerveceria-pos/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 120,
		Window:            time.Minute,
		KeyPrefix:         "pos_rate_limit",
	}, logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	cartItemRepo := repository.NewCartItemRepository(db)

	// Initialize services
	cartService := service.NewCartService(cartItemRepo, logger)
	invoiceService := service.NewInvoiceService(
		customerRepo,
		productRepo,
		cartItemRepo,
		service.MissingProductPolicy(cfg.Invoice.MissingProductPolicy),
		logger,
	)

	// Initialize invoice delivery collaborators
	renderer, err := render.NewInvoiceRenderer(cfg.Invoice.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize invoice renderer: %w", err)
	}
	mailer := notify.NewMailer(cfg.SMTP, logger)

	// Initialize handlers
	productHandler := transport.NewProductHandler(productRepo, logger)
	customerHandler := transport.NewCustomerHandler(customerRepo, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	invoiceHandler := transport.NewInvoiceHandler(invoiceService, renderer, mailer, logger)

	// Register routes
	productHandler.RegisterRoutes(router)
	customerHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	invoiceHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
