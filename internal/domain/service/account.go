package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nedconnect/backend/internal/domain/common/errorz"
	"github.com/nedconnect/backend/internal/domain/dto"
	"github.com/nedconnect/backend/internal/domain/entity"
)

type AccountStorage interface {
	Create(ctx context.Context, account *entity.Account) (*entity.Account, error)
	Get(ctx context.Context, id string) (*entity.Account, error)
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetUnlinkedSocieties(ctx context.Context) ([]entity.Account, error)
	SetSociety(ctx context.Context, accountID, societyID string) error
	GetProfile(ctx context.Context, accountID string) (*dto.Profile, error)
}

type accountSocietyStorage interface {
	Get(ctx context.Context, id string) (*entity.Society, error)
}

type AccountService struct {
	storage        AccountStorage
	societyStorage accountSocietyStorage
}

func NewAccountService(storage AccountStorage, societyStorage accountSocietyStorage) *AccountService {
	return &AccountService{
		storage:        storage,
		societyStorage: societyStorage,
	}
}

type SignUpInput struct {
	FullName string
	Email    string
	Username string
	Password string
	Role     entity.Role
}

// SignUp creates a student or society account. Society accounts start with
// no society link and stay read-only until an admin provisions them.
// The username and email prechecks give precise duplicate errors; the unique
// indexes remain the backstop under concurrent signups.
func (s *AccountService) SignUp(ctx context.Context, in SignUpInput) (*entity.Account, error) {
	if in.Role != entity.RoleStudent && in.Role != entity.RoleSociety {
		return nil, errorz.Forbidden
	}

	if _, err := s.storage.GetByUsername(ctx, in.Username); err == nil {
		return nil, errorz.DuplicateUsername
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.storage.GetByEmail(ctx, in.Email); err == nil {
		return nil, errorz.DuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account, err := s.storage.Create(ctx, &entity.Account{
		FullName:     in.FullName,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorz.DuplicateUsername
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) Get(ctx context.Context, id string) (*entity.Account, error) {
	account, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound
		}
		return nil, err
	}
	return account, nil
}

// Profile returns the flat account view with the society name joined in.
func (s *AccountService) Profile(ctx context.Context, accountID string) (*dto.Profile, error) {
	profile, err := s.storage.GetProfile(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound
		}
		return nil, err
	}
	return profile, nil
}

// ListUnlinkedSocietyAccounts returns society accounts awaiting provisioning.
func (s *AccountService) ListUnlinkedSocietyAccounts(ctx context.Context) ([]dto.UnlinkedAccount, error) {
	accounts, err := s.storage.GetUnlinkedSocieties(ctx)
	if err != nil {
		return nil, err
	}
	unlinked := make([]dto.UnlinkedAccount, 0, len(accounts))
	for _, account := range accounts {
		unlinked = append(unlinked, dto.NewUnlinkedAccount(account))
	}
	return unlinked, nil
}

// LinkToSociety provisions a society account. Linking to the society the
// account already belongs to is a no-op; relinking to a different one is a
// conflict the admin has to resolve by hand.
func (s *AccountService) LinkToSociety(ctx context.Context, accountID, societyID string) error {
	account, err := s.storage.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorz.NotFound
		}
		return err
	}
	if account.Role != entity.RoleSociety {
		return errorz.Forbidden
	}
	if account.SocietyID != nil {
		if *account.SocietyID == societyID {
			return nil
		}
		return errorz.AlreadyLinked
	}

	if _, err = s.societyStorage.Get(ctx, societyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorz.NotFound
		}
		return err
	}

	return s.storage.SetSociety(ctx, accountID, societyID)
}

// EnsureAdmin seeds the admin account on first boot. Credentials come from
// configuration; there is deliberately no signup path and no built-in
// credential that grants admin access.
func (s *AccountService) EnsureAdmin(ctx context.Context, fullName, email, username, password string) error {
	_, err := s.storage.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.storage.Create(ctx, &entity.Account{
		FullName:     fullName,
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
	})
	return err
}
