package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/nedconnect/backend/internal/domain/common/errorz"
	"github.com/nedconnect/backend/internal/domain/dto"
	"github.com/nedconnect/backend/internal/domain/entity"
	"github.com/nedconnect/backend/pkg/logger/types"
	"github.com/nedconnect/backend/pkg/ticket"
)

type RegistrationStorage interface {
	Create(ctx context.Context, registration *entity.Registration) (*entity.Registration, error)
	Get(ctx context.Context, eventID, studentID string) (*entity.Registration, error)
	Delete(ctx context.Context, eventID, studentID string) (int64, error)
	GetStudentEvents(ctx context.Context, studentID string) ([]dto.StudentEvent, error)
	GetByEventID(ctx context.Context, eventID string) ([]dto.Attendee, error)
	GetEmailsByEventID(ctx context.Context, eventID string) ([]string, error)
	CountByEventID(ctx context.Context, eventID string) (int64, error)
}

type registrationEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

type registrationAccountStorage interface {
	Get(ctx context.Context, id string) (*entity.Account, error)
}

type registrationSMTPClient interface {
	SendTicket(to, eventTitle, when string, ticketPNG []byte)
}

type RegistrationService struct {
	logger *types.Logger

	storage        RegistrationStorage
	eventStorage   registrationEventStorage
	accountStorage registrationAccountStorage
	smtpClient     registrationSMTPClient
}

func NewRegistrationService(
	logger *types.Logger,
	storage RegistrationStorage,
	eventStorage registrationEventStorage,
	accountStorage registrationAccountStorage,
	smtpClient registrationSMTPClient,
) *RegistrationService {
	return &RegistrationService{
		logger: logger,

		storage:        storage,
		eventStorage:   eventStorage,
		accountStorage: accountStorage,
		smtpClient:     smtpClient,
	}
}

type AttendeeInput struct {
	FullName    string
	RollNumber  string
	PhoneNumber string
	Department  string
}

// Register records a student's intent to attend an approved event. The
// check-then-insert race between two identical registrations is settled by
// the (event_id, student_id) unique index: exactly one insert wins, the
// other surfaces AlreadyRegistered.
func (s *RegistrationService) Register(ctx context.Context, studentID, eventID string, attendee AttendeeInput) (*entity.Registration, error) {
	event, err := s.eventStorage.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound
		}
		return nil, err
	}
	if event.Status != entity.EventApproved {
		return nil, errorz.EventNotApproved
	}
	if !event.OpenTo(attendee.Department) {
		return nil, errorz.DepartmentNotAllowed
	}

	registration, err := s.storage.Create(ctx, &entity.Registration{
		EventID:     eventID,
		StudentID:   studentID,
		FullName:    attendee.FullName,
		RollNumber:  attendee.RollNumber,
		PhoneNumber: attendee.PhoneNumber,
		Department:  attendee.Department,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorz.AlreadyRegistered
		}
		return nil, err
	}

	s.sendTicket(ctx, studentID, event, registration)

	return registration, nil
}

// sendTicket emails the QR ticket for a fresh registration. Mail trouble is
// logged, never surfaced: the registration already exists.
func (s *RegistrationService) sendTicket(ctx context.Context, studentID string, event *entity.Event, registration *entity.Registration) {
	if s.smtpClient == nil {
		return
	}

	account, err := s.accountStorage.Get(ctx, studentID)
	if err != nil {
		s.logger.Errorf("(registration: %s) failed to get account for ticket mail: %v", registration.ID, err)
		return
	}

	png, err := ticket.Generate(ticket.Config{
		Payload: fmt.Sprintf("ticket:%s", registration.ID),
		Caption: event.Title,
	})
	if err != nil {
		s.logger.Errorf("(registration: %s) failed to generate ticket: %v", registration.ID, err)
		return
	}

	when := fmt.Sprintf("%s %s", event.EventDate.Format("02.01.2006"), event.StartTime)
	s.smtpClient.SendTicket(account.Email, event.Title, when, png)
}

// Cancel deletes the student's registration for the event.
func (s *RegistrationService) Cancel(ctx context.Context, studentID, eventID string) error {
	affected, err := s.storage.Delete(ctx, eventID, studentID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errorz.NotRegistered
	}
	return nil
}

func (s *RegistrationService) IsRegistered(ctx context.Context, studentID, eventID string) (bool, error) {
	_, err := s.storage.Get(ctx, eventID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListForStudent returns the personal schedule view.
func (s *RegistrationService) ListForStudent(ctx context.Context, studentID string) ([]dto.StudentEvent, error) {
	return s.storage.GetStudentEvents(ctx, studentID)
}

// ListForEvent returns the attendee list of an event.
func (s *RegistrationService) ListForEvent(ctx context.Context, eventID string) ([]dto.Attendee, error) {
	return s.storage.GetByEventID(ctx, eventID)
}

func (s *RegistrationService) CountForEvent(ctx context.Context, eventID string) (int64, error) {
	return s.storage.CountByEventID(ctx, eventID)
}

// ExportForEvent renders the attendee list as an XLSX workbook for the
// hosting society's desk at the venue.
func (s *RegistrationService) ExportForEvent(ctx context.Context, eventID string) (*bytes.Buffer, error) {
	attendees, err := s.storage.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return attendeesToXLSX(attendees)
}

func attendeesToXLSX(attendees []dto.Attendee) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheet := "Sheet1"
	_ = f.SetCellValue(sheet, "A1", "Full Name")
	_ = f.SetCellValue(sheet, "B1", "Roll Number")
	_ = f.SetCellValue(sheet, "C1", "Phone")
	_ = f.SetCellValue(sheet, "D1", "Department")
	_ = f.SetCellValue(sheet, "E1", "Registered At")
	for i, attendee := range attendees {
		row := strconv.Itoa(i + 2)
		_ = f.SetCellValue(sheet, "A"+row, attendee.FullName)
		_ = f.SetCellValue(sheet, "B"+row, attendee.RollNumber)
		_ = f.SetCellValue(sheet, "C"+row, attendee.PhoneNumber)
		_ = f.SetCellValue(sheet, "D"+row, attendee.Department)
		_ = f.SetCellValue(sheet, "E"+row, attendee.RegisteredAt.Format("02.01.2006 15:04"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return &buf, nil
}
