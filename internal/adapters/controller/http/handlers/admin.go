package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nedconnect/backend/internal/domain/entity"
	"github.com/nedconnect/backend/internal/domain/service"
	"github.com/nedconnect/backend/pkg/logger/types"
)

type AdminHandler struct {
	logger              *types.Logger
	accountService      *service.AccountService
	societyService      *service.SocietyService
	eventService        *service.EventService
	registrationService *service.RegistrationService
}

func NewAdminHandler(
	logger *types.Logger,
	accountService *service.AccountService,
	societyService *service.SocietyService,
	eventService *service.EventService,
	registrationService *service.RegistrationService,
) *AdminHandler {
	return &AdminHandler{
		logger:              logger,
		accountService:      accountService,
		societyService:      societyService,
		eventService:        eventService,
		registrationService: registrationService,
	}
}

type createSocietyRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

func (h *AdminHandler) CreateSociety(c *fiber.Ctx) error {
	var req createSocietyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	society, err := h.societyService.Create(c.UserContext(), req.Name)
	if err != nil {
		return err
	}

	h.logger.Infof("society %s (%s) created", society.ID, society.Name)
	return c.Status(fiber.StatusCreated).JSON(society)
}

func (h *AdminHandler) ListSocieties(c *fiber.Ctx) error {
	societies, err := h.societyService.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(societies)
}

// ListUnlinkedAccounts returns society accounts awaiting provisioning.
func (h *AdminHandler) ListUnlinkedAccounts(c *fiber.Ctx) error {
	accounts, err := h.accountService.ListUnlinkedSocietyAccounts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(accounts)
}

type linkAccountRequest struct {
	SocietyID string `json:"society_id" validate:"required,uuid4"`
}

// LinkAccount provisions a society account by pointing it at a society.
func (h *AdminHandler) LinkAccount(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}

	var req linkAccountRequest
	if err = c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err = validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err = h.accountService.LinkToSociety(c.UserContext(), accountID.String(), req.SocietyID); err != nil {
		return err
	}

	h.logger.Infof("account %s linked to society %s", accountID, req.SocietyID)
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPendingEvents returns the review queue.
func (h *AdminHandler) ListPendingEvents(c *fiber.Ctx) error {
	events, err := h.eventService.ListPending(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(events)
}

type decideEventRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=approved rejected"`
}

// DecideEvent approves or rejects a pending event. Decisions are final.
func (h *AdminHandler) DecideEvent(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid event id")
	}

	var req decideEventRequest
	if err = c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err = validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.Decide(c.UserContext(), eventID.String(), entity.EventStatus(req.Outcome))
	if err != nil {
		return err
	}

	h.logger.Infof("event %s %s", event.ID, event.Status)
	return c.JSON(event)
}

// ExportEventAttendees hands back the attendee list of any event as XLSX.
func (h *AdminHandler) ExportEventAttendees(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid event id")
	}

	if _, err = h.eventService.Get(c.UserContext(), eventID.String()); err != nil {
		return err
	}

	buf, err := h.registrationService.ExportForEvent(c.UserContext(), eventID.String())
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=attendees-%s.xlsx", eventID))
	return c.Send(buf.Bytes())
}
