package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bcgsc/mavis-config/pkg/api/handlers"
	"github.com/bcgsc/mavis-config/pkg/stage"
	"github.com/bcgsc/mavis-config/pkg/validation"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/sirupsen/logrus"
)

// Service defines the API service interface
type Service interface {
	Start(ctx context.Context) error
	Stop() error
}

type service struct {
	app       *fiber.App
	server    *http.Server
	config    *Config
	validator validation.Validator
	graph     *stage.PipelineGraph
	log       logrus.FieldLogger
}

// NewService creates a new API service
func NewService(cfg *Config, validator validation.Validator, graph *stage.PipelineGraph, log logrus.FieldLogger) Service {
	return &service{
		config:    cfg,
		validator: validator,
		graph:     graph,
		log:       log.WithField("service", "api"),
	}
}

// newApp builds the Fiber app with middleware and every route mounted
func (s *service) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
		AppName:      "MAVIS Config API",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	setupMiddleware(app, s.log)

	server := handlers.NewServer(s.validator, s.graph, s.log)
	server.RegisterRoutes(app.Group("/api/v1"))

	return app
}

// Start initializes and starts the API server
func (s *service) Start(_ context.Context) error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	s.app = s.newApp()

	// Create HTTP server with the Fiber app
	s.server = &http.Server{
		Addr:              s.config.Addr,
		Handler:           adaptor.FiberApp(s.app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.log.WithField("addr", s.config.Addr).Info("Starting API server")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("Server failed to start")
		}
	}()

	return nil
}

// Stop gracefully shuts down the API server
func (s *service) Stop() error {
	if s.server == nil {
		return nil
	}

	s.log.Info("Stopping API server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
