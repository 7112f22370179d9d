package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nedconnect/backend/internal/domain/common/errorz"
	"github.com/nedconnect/backend/internal/domain/dto"
	"github.com/nedconnect/backend/internal/domain/entity"
)

type EventStorage interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	UpdateStatus(ctx context.Context, id string, from, to entity.EventStatus) (int64, error)
	GetPending(ctx context.Context) ([]dto.EventWithSociety, error)
	GetApproved(ctx context.Context) ([]dto.EventWithSociety, error)
	GetBySociety(ctx context.Context, societyID string) ([]entity.Event, error)
	GetApprovedBetween(ctx context.Context, from, to time.Time) ([]entity.Event, error)
	Count(ctx context.Context) (int64, error)
}

type posterStorage interface {
	Store(path string, data []byte, contentType string) (string, error)
}

type EventService struct {
	storage EventStorage
	posters posterStorage
}

func NewEventService(storage EventStorage, posters posterStorage) *EventService {
	return &EventService{
		storage: storage,
		posters: posters,
	}
}

type PosterUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ProposeInput struct {
	Title              string
	Description        string
	EventDate          time.Time
	StartTime          string
	EndTime            string
	Venue              string
	AllowedDepartments []string
	Poster             *PosterUpload
}

// Propose submits an event on behalf of a society. Every proposal starts
// pending, whatever the caller sends; only an admin decision moves it on.
func (s *EventService) Propose(ctx context.Context, societyID string, in ProposeInput) (*entity.Event, error) {
	var posterURL string
	if in.Poster != nil {
		path := fmt.Sprintf("%s/%d%s", societyID, time.Now().UnixMilli(), strings.ToLower(filepath.Ext(in.Poster.Filename)))
		url, err := s.posters.Store(path, in.Poster.Data, in.Poster.ContentType)
		if err != nil {
			return nil, fmt.Errorf("store poster: %w", err)
		}
		posterURL = url
	}

	return s.storage.Create(ctx, &entity.Event{
		SocietyID:          societyID,
		Title:              in.Title,
		Description:        in.Description,
		EventDate:          in.EventDate,
		StartTime:          in.StartTime,
		EndTime:            in.EndTime,
		Venue:              in.Venue,
		PosterURL:          posterURL,
		Status:             entity.EventPending,
		AllowedDepartments: in.AllowedDepartments,
	})
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	event, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound
		}
		return nil, err
	}
	return event, nil
}

// Decide settles a pending event. Approved and rejected are terminal: the
// status flip is a compare-and-swap against pending, so a second decision,
// concurrent or late, fails with InvalidTransition instead of rewriting the
// student-visible feed.
func (s *EventService) Decide(ctx context.Context, eventID string, outcome entity.EventStatus) (*entity.Event, error) {
	if outcome != entity.EventApproved && outcome != entity.EventRejected {
		return nil, fmt.Errorf("%w: outcome must be approved or rejected", errorz.InvalidTransition)
	}

	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}

	affected, err := s.storage.UpdateStatus(ctx, eventID, entity.EventPending, outcome)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errorz.InvalidTransition
	}

	return s.Get(ctx, eventID)
}

func (s *EventService) ListPending(ctx context.Context) ([]dto.EventWithSociety, error) {
	return s.storage.GetPending(ctx)
}

func (s *EventService) ListApproved(ctx context.Context) ([]dto.EventWithSociety, error) {
	return s.storage.GetApproved(ctx)
}

func (s *EventService) ListBySociety(ctx context.Context, societyID string) ([]entity.Event, error) {
	return s.storage.GetBySociety(ctx, societyID)
}

func (s *EventService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}
