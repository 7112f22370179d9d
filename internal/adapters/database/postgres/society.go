package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/nedconnect/backend/internal/domain/entity"
)

type SocietyStorage struct {
	db *gorm.DB
}

func NewSocietyStorage(db *gorm.DB) *SocietyStorage {
	return &SocietyStorage{
		db: db,
	}
}

// Create is a function that creates a new society in the database.
func (s *SocietyStorage) Create(ctx context.Context, society *entity.Society) (*entity.Society, error) {
	err := s.db.WithContext(ctx).Create(&society).Error
	return society, err
}

// Get is a function that gets a society from the database by id.
func (s *SocietyStorage) Get(ctx context.Context, id string) (*entity.Society, error) {
	var society entity.Society
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&society).Error
	return &society, err
}

func (s *SocietyStorage) GetByName(ctx context.Context, name string) (*entity.Society, error) {
	var society entity.Society
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&society).Error
	return &society, err
}

// GetAll is a function that gets all societies from the database.
func (s *SocietyStorage) GetAll(ctx context.Context) ([]entity.Society, error) {
	var societies []entity.Society
	err := s.db.WithContext(ctx).Order("name ASC").Find(&societies).Error
	return societies, err
}

// Count is a function that gets the count of societies from the database.
func (s *SocietyStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Society{}).Count(&count).Error
	return count, err
}
