package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nedconnect/backend/internal/domain/common/errorz"
	"github.com/nedconnect/backend/internal/domain/entity"
)

type SocietyStorage interface {
	Create(ctx context.Context, society *entity.Society) (*entity.Society, error)
	Get(ctx context.Context, id string) (*entity.Society, error)
	GetByName(ctx context.Context, name string) (*entity.Society, error)
	GetAll(ctx context.Context) ([]entity.Society, error)
	Count(ctx context.Context) (int64, error)
}

type SocietyService struct {
	storage SocietyStorage
}

func NewSocietyService(storage SocietyStorage) *SocietyService {
	return &SocietyService{
		storage: storage,
	}
}

// Create adds a society to the catalog. Names are unique; the index backs
// the precheck up under concurrent creates.
func (s *SocietyService) Create(ctx context.Context, name string) (*entity.Society, error) {
	if _, err := s.storage.GetByName(ctx, name); err == nil {
		return nil, errorz.DuplicateName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	society, err := s.storage.Create(ctx, &entity.Society{Name: name})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorz.DuplicateName
		}
		return nil, err
	}
	return society, nil
}

func (s *SocietyService) Get(ctx context.Context, id string) (*entity.Society, error) {
	society, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound
		}
		return nil, err
	}
	return society, nil
}

func (s *SocietyService) GetAll(ctx context.Context) ([]entity.Society, error) {
	return s.storage.GetAll(ctx)
}

func (s *SocietyService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}
