package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/nedconnect/backend/internal/domain/dto"
	"github.com/nedconnect/backend/internal/domain/entity"
)

type AccountStorage struct {
	db *gorm.DB
}

func NewAccountStorage(db *gorm.DB) *AccountStorage {
	return &AccountStorage{
		db: db,
	}
}

// Create is a function that creates a new account in the database.
func (s *AccountStorage) Create(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	err := s.db.WithContext(ctx).Create(&account).Error
	return account, err
}

// Get is a function that gets an account from the database by id.
func (s *AccountStorage) Get(ctx context.Context, id string) (*entity.Account, error) {
	var account entity.Account
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	return &account, err
}

func (s *AccountStorage) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var account entity.Account
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&account).Error
	return &account, err
}

func (s *AccountStorage) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var account entity.Account
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	return &account, err
}

// GetUnlinkedSocieties returns society-role accounts that no admin has
// linked to a society yet.
func (s *AccountStorage) GetUnlinkedSocieties(ctx context.Context) ([]entity.Account, error) {
	var accounts []entity.Account
	err := s.db.WithContext(ctx).
		Where("role = ? AND society_id IS NULL", entity.RoleSociety).
		Order("created_at ASC").
		Find(&accounts).Error
	return accounts, err
}

func (s *AccountStorage) SetSociety(ctx context.Context, accountID, societyID string) error {
	return s.db.WithContext(ctx).
		Model(&entity.Account{}).
		Where("id = ?", accountID).
		Update("society_id", societyID).Error
}

// GetProfile returns the flat account view with the society name joined in.
func (s *AccountStorage) GetProfile(ctx context.Context, accountID string) (*dto.Profile, error) {
	var profile dto.Profile
	err := s.db.WithContext(ctx).
		Table("accounts").
		Select("accounts.id, accounts.full_name, accounts.email, accounts.username, accounts.role, accounts.society_id, societies.name AS society_name").
		Joins("LEFT JOIN societies ON societies.id = accounts.society_id").
		Where("accounts.id = ?", accountID).
		Scan(&profile).Error
	if err != nil {
		return nil, err
	}
	if profile.ID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}
