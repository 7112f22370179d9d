package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nedconnect/backend/internal/domain/dto"
	"github.com/nedconnect/backend/internal/domain/entity"
	"github.com/nedconnect/backend/pkg/logger/types"
)

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type memAccountStorage struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
}

func newMemAccountStorage() *memAccountStorage {
	return &memAccountStorage{accounts: make(map[string]*entity.Account)}
}

func (s *memAccountStorage) Create(_ context.Context, account *entity.Account) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Username == account.Username || existing.Email == account.Email {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	account.ID = uuid.NewString()
	account.CreatedAt = time.Now()
	s.accounts[account.ID] = account
	return account, nil
}

func (s *memAccountStorage) Get(_ context.Context, id string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *account
	return &copied, nil
}

func (s *memAccountStorage) GetByUsername(_ context.Context, username string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.Username == username {
			copied := *account
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memAccountStorage) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memAccountStorage) GetUnlinkedSocieties(_ context.Context) ([]entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var unlinked []entity.Account
	for _, account := range s.accounts {
		if account.Role == entity.RoleSociety && account.SocietyID == nil {
			unlinked = append(unlinked, *account)
		}
	}
	sort.Slice(unlinked, func(i, j int) bool {
		return unlinked[i].CreatedAt.Before(unlinked[j].CreatedAt)
	})
	return unlinked, nil
}

func (s *memAccountStorage) SetSociety(_ context.Context, accountID, societyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	account.SocietyID = &societyID
	return nil
}

func (s *memAccountStorage) GetProfile(_ context.Context, accountID string) (*dto.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &dto.Profile{
		ID:        account.ID,
		FullName:  account.FullName,
		Email:     account.Email,
		Username:  account.Username,
		Role:      account.Role,
		SocietyID: account.SocietyID,
	}, nil
}

type memSessionStorage struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newMemSessionStorage() *memSessionStorage {
	return &memSessionStorage{sessions: make(map[string]string)}
}

func (s *memSessionStorage) Get(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[token], nil
}

func (s *memSessionStorage) Set(_ context.Context, token, accountID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = accountID
	return nil
}

func (s *memSessionStorage) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

type memSocietyStorage struct {
	mu        sync.Mutex
	societies map[string]*entity.Society
}

func newMemSocietyStorage() *memSocietyStorage {
	return &memSocietyStorage{societies: make(map[string]*entity.Society)}
}

func (s *memSocietyStorage) Create(_ context.Context, society *entity.Society) (*entity.Society, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.societies {
		if existing.Name == society.Name {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	society.ID = uuid.NewString()
	society.CreatedAt = time.Now()
	s.societies[society.ID] = society
	return society, nil
}

func (s *memSocietyStorage) Get(_ context.Context, id string) (*entity.Society, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	society, ok := s.societies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *society
	return &copied, nil
}

func (s *memSocietyStorage) GetByName(_ context.Context, name string) (*entity.Society, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, society := range s.societies {
		if society.Name == name {
			copied := *society
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memSocietyStorage) GetAll(_ context.Context) ([]entity.Society, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]entity.Society, 0, len(s.societies))
	for _, society := range s.societies {
		all = append(all, *society)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (s *memSocietyStorage) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.societies)), nil
}

type memEventStorage struct {
	mu     sync.Mutex
	events map[string]*entity.Event
}

func newMemEventStorage() *memEventStorage {
	return &memEventStorage{events: make(map[string]*entity.Event)}
}

func (s *memEventStorage) Create(_ context.Context, event *entity.Event) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.ID = uuid.NewString()
	event.CreatedAt = time.Now()
	s.events[event.ID] = event
	return event, nil
}

func (s *memEventStorage) Get(_ context.Context, id string) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (s *memEventStorage) UpdateStatus(_ context.Context, id string, from, to entity.EventStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok || event.Status != from {
		return 0, nil
	}
	event.Status = to
	return 1, nil
}

func (s *memEventStorage) listByStatus(status entity.EventStatus) []dto.EventWithSociety {
	var rows []dto.EventWithSociety
	for _, event := range s.events {
		if event.Status != status {
			continue
		}
		rows = append(rows, dto.EventWithSociety{
			ID:        event.ID,
			SocietyID: event.SocietyID,
			Title:     event.Title,
			EventDate: event.EventDate,
			Status:    event.Status,
			CreatedAt: event.CreatedAt,
		})
	}
	return rows
}

func (s *memEventStorage) GetPending(_ context.Context) ([]dto.EventWithSociety, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.listByStatus(entity.EventPending)
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	return rows, nil
}

func (s *memEventStorage) GetApproved(_ context.Context) ([]dto.EventWithSociety, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.listByStatus(entity.EventApproved)
	sort.Slice(rows, func(i, j int) bool { return rows[i].EventDate.Before(rows[j].EventDate) })
	return rows, nil
}

func (s *memEventStorage) GetBySociety(_ context.Context, societyID string) ([]entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []entity.Event
	for _, event := range s.events {
		if event.SocietyID == societyID {
			events = append(events, *event)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.After(events[j].CreatedAt) })
	return events, nil
}

func (s *memEventStorage) GetApprovedBetween(_ context.Context, from, to time.Time) ([]entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []entity.Event
	for _, event := range s.events {
		if event.Status == entity.EventApproved && !event.EventDate.Before(from) && event.EventDate.Before(to) {
			events = append(events, *event)
		}
	}
	return events, nil
}

func (s *memEventStorage) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.events)), nil
}

type memRegistrationStorage struct {
	mu            sync.Mutex
	registrations map[string]*entity.Registration
	emails        map[string]string
}

func newMemRegistrationStorage() *memRegistrationStorage {
	return &memRegistrationStorage{
		registrations: make(map[string]*entity.Registration),
		emails:        make(map[string]string),
	}
}

func registrationKey(eventID, studentID string) string {
	return eventID + "/" + studentID
}

func (s *memRegistrationStorage) Create(_ context.Context, registration *entity.Registration) (*entity.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := registrationKey(registration.EventID, registration.StudentID)
	if _, exists := s.registrations[key]; exists {
		return nil, gorm.ErrDuplicatedKey
	}
	registration.ID = uuid.NewString()
	registration.CreatedAt = time.Now()
	s.registrations[key] = registration
	return registration, nil
}

func (s *memRegistrationStorage) Get(_ context.Context, eventID, studentID string) (*entity.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	registration, ok := s.registrations[registrationKey(eventID, studentID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *registration
	return &copied, nil
}

func (s *memRegistrationStorage) Delete(_ context.Context, eventID, studentID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := registrationKey(eventID, studentID)
	if _, ok := s.registrations[key]; !ok {
		return 0, nil
	}
	delete(s.registrations, key)
	return 1, nil
}

func (s *memRegistrationStorage) GetStudentEvents(_ context.Context, studentID string) ([]dto.StudentEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []dto.StudentEvent
	for _, registration := range s.registrations {
		if registration.StudentID == studentID {
			events = append(events, dto.StudentEvent{
				EventID:      registration.EventID,
				RegisteredAt: registration.CreatedAt,
			})
		}
	}
	return events, nil
}

func (s *memRegistrationStorage) GetByEventID(_ context.Context, eventID string) ([]dto.Attendee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var attendees []dto.Attendee
	for _, registration := range s.registrations {
		if registration.EventID == eventID {
			attendees = append(attendees, dto.Attendee{
				FullName:     registration.FullName,
				RollNumber:   registration.RollNumber,
				PhoneNumber:  registration.PhoneNumber,
				Department:   registration.Department,
				RegisteredAt: registration.CreatedAt,
			})
		}
	}
	return attendees, nil
}

func (s *memRegistrationStorage) GetEmailsByEventID(_ context.Context, eventID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var emails []string
	for _, registration := range s.registrations {
		if registration.EventID == eventID {
			if email, ok := s.emails[registration.StudentID]; ok {
				emails = append(emails, email)
			}
		}
	}
	return emails, nil
}

func (s *memRegistrationStorage) CountByEventID(_ context.Context, eventID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, registration := range s.registrations {
		if registration.EventID == eventID {
			count++
		}
	}
	return count, nil
}

type memPosterStore struct {
	mu    sync.Mutex
	paths []string
}

func (s *memPosterStore) Store(path string, _ []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
	return "https://posters.test/" + path, nil
}

type sentMail struct {
	To    string
	Title string
	When  string
	Venue string
}

type memMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *memMailer) SendTicket(to, eventTitle, when string, _ []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Title: eventTitle, When: when})
}

func (m *memMailer) SendReminder(to, eventTitle, when, venue string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Title: eventTitle, When: when, Venue: venue})
}

func (m *memMailer) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}
