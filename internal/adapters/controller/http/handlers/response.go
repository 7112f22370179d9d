package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nedconnect/backend/internal/domain/common/errorz"
	"github.com/nedconnect/backend/pkg/logger/types"
)

var validate = validator.New()

// ErrorHandler maps domain errors onto HTTP statuses. Everything in the
// errorz taxonomy is a caller-side precondition failure and comes back with
// guidance; anything else is an upstream failure, logged and hidden behind
// a plain 500 so callers know a retry is the only sensible move.
func ErrorHandler(log *types.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		status, message := classify(err)
		if status == fiber.StatusInternalServerError {
			log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
			message = "something went wrong, please try again"
		}
		return c.Status(status).JSON(fiber.Map{"error": message})
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errorz.Unauthenticated):
		return fiber.StatusUnauthorized, "please log in to continue"
	case errors.Is(err, errorz.NotProvisioned):
		return fiber.StatusForbidden, "your society account is awaiting admin approval; you will be able to post events once an admin links it to a society"
	case errors.Is(err, errorz.Forbidden):
		return fiber.StatusForbidden, "you do not have permission to do that"
	case errors.Is(err, errorz.RoleMismatch):
		return fiber.StatusForbidden, errorz.RoleMismatch.Error()
	case errors.Is(err, errorz.InvalidCredentials):
		return fiber.StatusUnauthorized, errorz.InvalidCredentials.Error()
	case errors.Is(err, errorz.NotFound):
		return fiber.StatusNotFound, errorz.NotFound.Error()
	case errors.Is(err, errorz.NotRegistered):
		return fiber.StatusNotFound, errorz.NotRegistered.Error()
	case errors.Is(err, errorz.DuplicateUsername):
		return fiber.StatusConflict, errorz.DuplicateUsername.Error()
	case errors.Is(err, errorz.DuplicateEmail):
		return fiber.StatusConflict, errorz.DuplicateEmail.Error()
	case errors.Is(err, errorz.DuplicateName):
		return fiber.StatusConflict, errorz.DuplicateName.Error()
	case errors.Is(err, errorz.AlreadyLinked):
		return fiber.StatusConflict, errorz.AlreadyLinked.Error()
	case errors.Is(err, errorz.InvalidTransition):
		return fiber.StatusConflict, errorz.InvalidTransition.Error()
	case errors.Is(err, errorz.AlreadyRegistered):
		return fiber.StatusConflict, errorz.AlreadyRegistered.Error()
	case errors.Is(err, errorz.EventNotApproved):
		return fiber.StatusUnprocessableEntity, errorz.EventNotApproved.Error()
	case errors.Is(err, errorz.DepartmentNotAllowed):
		return fiber.StatusUnprocessableEntity, errorz.DepartmentNotAllowed.Error()
	default:
		return fiber.StatusInternalServerError, ""
	}
}
