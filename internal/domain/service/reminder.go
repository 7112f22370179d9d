package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nedconnect/backend/internal/domain/entity"
	"github.com/nedconnect/backend/pkg/logger/types"
)

type reminderEventStorage interface {
	GetApprovedBetween(ctx context.Context, from, to time.Time) ([]entity.Event, error)
}

type reminderRegistrationStorage interface {
	GetEmailsByEventID(ctx context.Context, eventID string) ([]string, error)
}

type reminderSMTPClient interface {
	SendReminder(to, eventTitle, when, venue string)
}

// ReminderService mails registered students the day before an approved
// event takes place.
type ReminderService struct {
	logger *types.Logger

	eventStorage        reminderEventStorage
	registrationStorage reminderRegistrationStorage
	smtpClient          reminderSMTPClient

	sendHour int
}

func NewReminderService(
	logger *types.Logger,
	eventStorage reminderEventStorage,
	registrationStorage reminderRegistrationStorage,
	smtpClient reminderSMTPClient,
	sendHour int,
) *ReminderService {
	return &ReminderService{
		logger: logger,

		eventStorage:        eventStorage,
		registrationStorage: registrationStorage,
		smtpClient:          smtpClient,

		sendHour: sendHour,
	}
}

// Start launches the hourly reminder loop. The hourly tick plus the
// configured send hour means each event's reminder goes out once.
func (s *ReminderService) Start() {
	s.logger.Info("Starting event reminder scheduler")
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			s.checkAndSend(context.Background())
		}
	}()
}

func (s *ReminderService) checkAndSend(ctx context.Context) {
	now := time.Now()
	if now.Hour() != s.sendHour {
		return
	}

	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
	events, err := s.eventStorage.GetApprovedBetween(ctx, tomorrow, tomorrow.Add(24*time.Hour))
	if err != nil {
		s.logger.Errorf("failed to get tomorrow's events: %v", err)
		return
	}

	for _, event := range events {
		emails, err := s.registrationStorage.GetEmailsByEventID(ctx, event.ID)
		if err != nil {
			s.logger.Errorf("failed to get recipients for event %s: %v", event.ID, err)
			continue
		}

		when := fmt.Sprintf("%s %s", event.EventDate.Format("02.01.2006"), event.StartTime)
		for _, email := range emails {
			s.smtpClient.SendReminder(email, event.Title, when, event.Venue)
		}
		s.logger.Infof("sent %d reminders for event %s", len(emails), event.ID)
	}
}
