package handlers

import "github.com/gofiber/fiber/v3"

// ErrUnknownStage is returned when the stage path parameter is not a pipeline stage
var ErrUnknownStage = fiber.NewError(fiber.StatusBadRequest, "unknown pipeline stage")

// ErrInvalidBody is returned when the request body is not a JSON or YAML mapping
var ErrInvalidBody = fiber.NewError(fiber.StatusBadRequest, "request body must be a JSON or YAML mapping")
