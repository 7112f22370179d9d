package handlers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nedconnect/backend/internal/adapters/controller/http/middlewares"
	"github.com/nedconnect/backend/internal/domain/common/errorz"
	"github.com/nedconnect/backend/internal/domain/service"
	"github.com/nedconnect/backend/pkg/logger/types"
)

// maxPosterSize caps poster uploads at 5 MiB.
const maxPosterSize = 5 << 20

type SocietyHandler struct {
	logger              *types.Logger
	eventService        *service.EventService
	registrationService *service.RegistrationService
}

func NewSocietyHandler(logger *types.Logger, eventService *service.EventService, registrationService *service.RegistrationService) *SocietyHandler {
	return &SocietyHandler{
		logger:              logger,
		eventService:        eventService,
		registrationService: registrationService,
	}
}

type proposeEventRequest struct {
	Title       string `form:"title" validate:"required,min=3,max=150"`
	Description string `form:"description" validate:"max=2000"`
	EventDate   string `form:"event_date" validate:"required,datetime=2006-01-02"`
	StartTime   string `form:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `form:"end_time" validate:"omitempty,datetime=15:04"`
	Venue       string `form:"venue" validate:"required,min=3,max=150"`
	// Comma-separated department codes; empty means open to everyone.
	AllowedDepartments string `form:"allowed_departments"`
}

// ProposeEvent accepts a multipart form with the event fields and an
// optional poster image. The event always enters the queue as pending.
func (h *SocietyHandler) ProposeEvent(c *fiber.Ctx) error {
	societyID, err := middlewares.Access(c).RequireSociety()
	if err != nil {
		return err
	}

	var req proposeEventRequest
	if err = c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err = validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	eventDate, _ := time.Parse("2006-01-02", req.EventDate)

	poster, err := posterFromRequest(c)
	if err != nil {
		return err
	}

	event, err := h.eventService.Propose(c.UserContext(), societyID, service.ProposeInput{
		Title:              req.Title,
		Description:        req.Description,
		EventDate:          eventDate,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		Venue:              req.Venue,
		AllowedDepartments: splitDepartments(req.AllowedDepartments),
		Poster:             poster,
	})
	if err != nil {
		return err
	}

	h.logger.Infof("society %s proposed event %s", societyID, event.ID)
	return c.Status(fiber.StatusCreated).JSON(event)
}

// MyEvents returns the society's own proposals and their statuses,
// newest first.
func (h *SocietyHandler) MyEvents(c *fiber.Ctx) error {
	societyID, err := middlewares.Access(c).RequireSociety()
	if err != nil {
		return err
	}

	events, err := h.eventService.ListBySociety(c.UserContext(), societyID)
	if err != nil {
		return err
	}
	return c.JSON(events)
}

// EventAttendees returns the attendee list of one of the society's events.
func (h *SocietyHandler) EventAttendees(c *fiber.Ctx) error {
	eventID, err := h.ownEvent(c)
	if err != nil {
		return err
	}

	attendees, err := h.registrationService.ListForEvent(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	count, err := h.registrationService.CountForEvent(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"count":     count,
		"attendees": attendees,
	})
}

// ExportEventAttendees hands the attendee list back as an XLSX download.
func (h *SocietyHandler) ExportEventAttendees(c *fiber.Ctx) error {
	eventID, err := h.ownEvent(c)
	if err != nil {
		return err
	}

	buf, err := h.registrationService.ExportForEvent(c.UserContext(), eventID)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=attendees-%s.xlsx", eventID))
	return c.Send(buf.Bytes())
}

// ownEvent parses the event id and checks the event belongs to the
// calling society.
func (h *SocietyHandler) ownEvent(c *fiber.Ctx) (string, error) {
	societyID, err := middlewares.Access(c).RequireSociety()
	if err != nil {
		return "", err
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid event id")
	}

	event, err := h.eventService.Get(c.UserContext(), eventID.String())
	if err != nil {
		return "", err
	}
	if event.SocietyID != societyID {
		return "", errorz.Forbidden
	}
	return event.ID, nil
}

func posterFromRequest(c *fiber.Ctx) (*service.PosterUpload, error) {
	fileHeader, err := c.FormFile("poster")
	if err != nil {
		// No poster attached.
		return nil, nil
	}
	if fileHeader.Size > maxPosterSize {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "poster must be at most 5 MiB")
	}

	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fiber.NewError(fiber.StatusBadRequest, "poster must be an image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &service.PosterUpload{
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func splitDepartments(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	departments := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			departments = append(departments, trimmed)
		}
	}
	return departments
}
