package handlers

import (
	"strconv"
	"strings"

	"github.com/bcgsc/mavis-config/pkg/config"
	"github.com/bcgsc/mavis-config/pkg/derive"
	"github.com/bcgsc/mavis-config/pkg/observability"
	"github.com/bcgsc/mavis-config/pkg/stage"
	"github.com/bcgsc/mavis-config/pkg/validation"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const endpointValidate = "validate"

// ValidateConfig handles POST /api/v1/validate/{stage}
func (s *Server) ValidateConfig(c fiber.Ctx) error {
	st, err := stage.Parse(c.Params("stage"))
	if err != nil {
		observability.RecordAPIRequest(endpointValidate, strconv.Itoa(fiber.StatusBadRequest))
		return ErrUnknownStage
	}

	doc, err := config.Parse(c.Body(), bodyFormat(c.Get(fiber.HeaderContentType)))
	if err != nil {
		observability.RecordAPIRequest(endpointValidate, strconv.Itoa(fiber.StatusBadRequest))
		return ErrInvalidBody
	}

	runID := uuid.New().String()
	log := s.log.WithFields(logrus.Fields{
		"run_id": runID,
		"stage":  st,
	})

	validated, err := s.validator.Validate(doc, st)
	if err != nil {
		log.WithError(err).Info("Configuration rejected")
		observability.RecordAPIRequest(endpointValidate, strconv.Itoa(fiber.StatusUnprocessableEntity))

		return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationErrorResponse{
			Error: err.Error(),
			Kind:  validation.Kind(err),
			Code:  fiber.StatusUnprocessableEntity,
		})
	}

	response := ValidateResponse{
		RunID:  runID,
		Stage:  st.String(),
		Config: validated,
	}

	// Bindings need output_dir, which the overlay and convert stages do not require
	if _, ok := validated.OutputDir(); ok {
		bindings, err := derive.SingularityBindings(validated)
		if err != nil {
			log.WithError(err).Warn("Failed to derive singularity bindings")
		} else {
			response.Bindings = bindings
		}
	}

	log.Debug("Configuration accepted")
	observability.RecordAPIRequest(endpointValidate, strconv.Itoa(fiber.StatusOK))

	return c.Status(fiber.StatusOK).JSON(response)
}

func bodyFormat(contentType string) config.Format {
	if strings.Contains(contentType, "yaml") {
		return config.FormatYAML
	}
	return config.FormatJSON
}
