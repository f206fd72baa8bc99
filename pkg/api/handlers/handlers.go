// Package handlers implements the request handlers of the configuration
// validation API
package handlers

import (
	"github.com/bcgsc/mavis-config/pkg/stage"
	"github.com/bcgsc/mavis-config/pkg/validation"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Server serves validation requests
type Server struct {
	validator validation.Validator
	graph     *stage.PipelineGraph
	log       logrus.FieldLogger
}

// NewServer creates a new API server instance
func NewServer(validator validation.Validator, graph *stage.PipelineGraph, log logrus.FieldLogger) *Server {
	return &Server{
		validator: validator,
		graph:     graph,
		log:       log.WithField("component", "api.handlers"),
	}
}

// RegisterRoutes mounts every handler on router
func (s *Server) RegisterRoutes(router fiber.Router) {
	router.Post("/validate/:stage", s.ValidateConfig)
	router.Get("/stages", s.ListStages)
	router.Get("/defaults", s.GetDefaults)
}
