package handlers

import (
	"strconv"

	"github.com/bcgsc/mavis-config/pkg/observability"
	"github.com/gofiber/fiber/v3"
)

// GetDefaults handles GET /api/v1/defaults
func (s *Server) GetDefaults(c fiber.Ctx) error {
	prefix := c.Query("prefix")

	defaults := s.validator.Defaults().Document()
	if prefix != "" {
		defaults = s.validator.Defaults().ByPrefix(prefix)
	}

	observability.RecordAPIRequest("defaults", strconv.Itoa(fiber.StatusOK))

	return c.Status(fiber.StatusOK).JSON(DefaultsResponse{
		Prefix:   prefix,
		Defaults: defaults,
		Total:    len(defaults),
	})
}
