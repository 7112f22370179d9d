package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nedconnect/backend/internal/adapters/controller/http/middlewares"
	"github.com/nedconnect/backend/internal/domain/service"
	"github.com/nedconnect/backend/pkg/logger/types"
)

type StudentHandler struct {
	logger              *types.Logger
	eventService        *service.EventService
	registrationService *service.RegistrationService
}

func NewStudentHandler(logger *types.Logger, eventService *service.EventService, registrationService *service.RegistrationService) *StudentHandler {
	return &StudentHandler{
		logger:              logger,
		eventService:        eventService,
		registrationService: registrationService,
	}
}

// Feed returns approved events ordered by date, each flattened with its
// society name. Pending and rejected proposals never show up here.
func (h *StudentHandler) Feed(c *fiber.Ctx) error {
	events, err := h.eventService.ListApproved(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(events)
}

type registerRequest struct {
	FullName    string `json:"full_name" validate:"required,min=2,max=100"`
	RollNumber  string `json:"roll_number" validate:"required,max=30"`
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
	Department  string `json:"department" validate:"required,max=50"`
}

func (h *StudentHandler) Register(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid event id")
	}

	var req registerRequest
	if err = c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err = validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	access := middlewares.Access(c)
	registration, err := h.registrationService.Register(c.UserContext(), access.AccountID, eventID.String(), service.AttendeeInput{
		FullName:    req.FullName,
		RollNumber:  req.RollNumber,
		PhoneNumber: req.PhoneNumber,
		Department:  req.Department,
	})
	if err != nil {
		return err
	}

	h.logger.Infof("student %s registered for event %s", access.AccountID, eventID)
	return c.Status(fiber.StatusCreated).JSON(registration)
}

func (h *StudentHandler) Cancel(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid event id")
	}

	access := middlewares.Access(c)
	if err = h.registrationService.Cancel(c.UserContext(), access.AccountID, eventID.String()); err != nil {
		return err
	}

	h.logger.Infof("student %s cancelled registration for event %s", access.AccountID, eventID)
	return c.SendStatus(fiber.StatusNoContent)
}

// RegistrationStatus drives the "registered" badge on an event card.
func (h *StudentHandler) RegistrationStatus(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid event id")
	}

	registered, err := h.registrationService.IsRegistered(c.UserContext(), middlewares.Access(c).AccountID, eventID.String())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"registered": registered})
}

// MySchedule returns every event the student is registered for.
func (h *StudentHandler) MySchedule(c *fiber.Ctx) error {
	events, err := h.registrationService.ListForStudent(c.UserContext(), middlewares.Access(c).AccountID)
	if err != nil {
		return err
	}
	return c.JSON(events)
}
