package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nedconnect/backend/internal/adapters/controller/http/middlewares"
	"github.com/nedconnect/backend/internal/domain/entity"
	"github.com/nedconnect/backend/internal/domain/service"
	"github.com/nedconnect/backend/pkg/logger/types"
)

type AuthHandler struct {
	logger         *types.Logger
	accountService *service.AccountService
	authService    *service.AuthService
}

func NewAuthHandler(logger *types.Logger, accountService *service.AccountService, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger:         logger,
		accountService: accountService,
		authService:    authService,
	}
}

type signUpRequest struct {
	FullName string `json:"fullname" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=student society"`
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req signUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	account, err := h.accountService.SignUp(c.UserContext(), service.SignUpInput{
		FullName: req.FullName,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		return err
	}

	h.logger.Infof("account %s signed up as %s", account.ID, account.Role)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       account.ID,
		"username": account.Username,
		"role":     account.Role,
	})
}

type loginRequest struct {
	// Identifier is a username or an email address.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	// Role is what the login form claims the account to be; a mismatch
	// is rejected before the credentials are even checked.
	Role string `json:"role" validate:"omitempty,oneof=student society admin"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	token, account, err := h.authService.Login(c.UserContext(), req.Identifier, req.Password, entity.Role(req.Role))
	if err != nil {
		return err
	}

	h.logger.Infof("account %s logged in", account.ID)
	return c.JSON(fiber.Map{
		"token":      token,
		"role":       account.Role,
		"society_id": account.SocietyID,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), middlewares.TokenFromRequest(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me returns the caller's profile with the society name joined in.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	access := middlewares.Access(c)
	profile, err := h.accountService.Profile(c.UserContext(), access.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}
