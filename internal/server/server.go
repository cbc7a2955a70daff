package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stockroom/apiserver/config"
	"github.com/stockroom/apiserver/internal/db"
	"github.com/stockroom/apiserver/internal/events"
	"github.com/stockroom/apiserver/internal/handlers"
	"github.com/stockroom/apiserver/internal/services"
	"github.com/stockroom/apiserver/internal/session"
	"github.com/stockroom/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	publisher  *events.Publisher
	logger     zerolog.Logger
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "server").Logger()

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sessions, err := newSessionManager(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	publisher, err := newEventPublisher(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	inventoryRepo := store.NewInventoryRepository(dbConn)

	userService := services.NewUserService(userRepo)

	var eventPublisher services.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	inventoryService := services.NewInventoryService(inventoryRepo, eventPublisher, logger)

	sessionMiddleware := handlers.RequireSession(sessions, cfg.Session.CookieName)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		handlers.AuthRouter(r, userService, sessions, cfg.Session)
		r.Route("/inventory", func(r chi.Router) {
			r.Use(sessionMiddleware)
			handlers.InventoryRouter(r, inventoryService)
		})
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		publisher:  publisher,
		logger:     logger,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("starting server")
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.publisher != nil {
		_ = s.publisher.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}

func newSessionManager(ctx context.Context, cfg config.Config) (session.Manager, error) {
	switch cfg.Session.Backend {
	case "redis":
		return session.NewRedisManager(ctx, cfg.Redis, cfg.Session.TTL)
	case "", "memory":
		return session.NewMemoryManager(cfg.Session.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

func newEventPublisher(ctx context.Context, cfg config.Config) (*events.Publisher, error) {
	switch cfg.MQ.Backend {
	case "rabbitmq":
		backend, err := events.NewRabbitMQBackend(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return events.NewPublisher(backend, cfg.MQ.Channel), nil
	case "pubsub":
		backend, err := events.NewPubSubBackend(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		return events.NewPublisher(backend, cfg.MQ.Channel), nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown mq backend %q", cfg.MQ.Backend)
	}
}
