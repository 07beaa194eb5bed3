package handlers

import (
	"Recipe-Share-Backend/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// statusCode maps a domain error to the HTTP status the endpoint
// reports. Conflicts stay 400 and are told apart by their message.
func statusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrIngredientNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedRecipeAccess),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}
