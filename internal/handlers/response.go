package handlers

import (
	"errors"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"catalog-service/internal/services"
)

var validate = validator.New()

// errorResponse writes the JSON error envelope.
func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": true, "message": message,
	})
}

// serviceError maps a service error to a status. Unexpected errors are
// logged and reported without detail.
func serviceError(c *fiber.Ctx, err error, notFound string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return errorResponse(c, fiber.StatusNotFound, notFound)
	case errors.Is(err, services.ErrInvalidInput):
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		return errorResponse(c, fiber.StatusConflict, err.Error())
	}
	log.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return errorResponse(c, fiber.StatusInternalServerError, "internal server error")
}

var errInvalidBody = errors.New("invalid request body")

// parseBody decodes and validates a JSON body. The returned error is safe
// to show to the client.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	if err := validate.Struct(out); err != nil {
		return errors.New(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+" failed "+fe.Tag())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// splitPath splits a wildcard route parameter into unescaped segments. A
// single trailing slash is tolerated; empty segments are not.
func splitPath(raw string) ([]string, bool) {
	raw = strings.TrimSuffix(raw, "/")
	if raw == "" {
		return nil, true
	}
	parts := strings.Split(raw, "/")
	for i, p := range parts {
		s, err := url.PathUnescape(p)
		if err != nil || strings.TrimSpace(s) == "" {
			return nil, false
		}
		parts[i] = s
	}
	return parts, true
}
