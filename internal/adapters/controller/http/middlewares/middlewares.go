package middlewares

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nedconnect/backend/internal/domain/common/errorz"
	"github.com/nedconnect/backend/internal/domain/entity"
	"github.com/nedconnect/backend/internal/domain/service"
	"github.com/nedconnect/backend/pkg/logger/types"
)

const accessLocal = "access"

type authService interface {
	Resolve(ctx context.Context, token string) (*service.AccessContext, error)
}

type Handler struct {
	logger      *types.Logger
	authService authService
}

func New(logger *types.Logger, authService authService) *Handler {
	return &Handler{
		logger:      logger,
		authService: authService,
	}
}

// Authenticated resolves the session token into an AccessContext and stores
// it on the request. Every authorization decision downstream starts from
// this server-held state; nothing the client sends besides the token is
// trusted.
func (h *Handler) Authenticated(c *fiber.Ctx) error {
	access, err := h.authService.Resolve(c.UserContext(), TokenFromRequest(c))
	if err != nil {
		return err
	}
	c.Locals(accessLocal, access)
	return c.Next()
}

// RequireRole guards a route group behind a single role.
func (h *Handler) RequireRole(role entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		access := Access(c)
		if access == nil {
			return errorz.Unauthenticated
		}
		if err := access.RequireRole(role); err != nil {
			return err
		}
		return c.Next()
	}
}

// Access returns the AccessContext stored by Authenticated, or nil.
func Access(c *fiber.Ctx) *service.AccessContext {
	access, _ := c.Locals(accessLocal).(*service.AccessContext)
	return access
}

// TokenFromRequest extracts the session token from the Authorization header
// or, failing that, the session cookie.
func TokenFromRequest(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Cookies("session")
}
