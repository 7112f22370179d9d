package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nedconnect/backend/internal/domain/common/errorz"
	"github.com/nedconnect/backend/internal/domain/entity"
)

// AccessContext is what a resolved session grants: who the caller is, which
// role they hold and, for society accounts, which society they act for.
type AccessContext struct {
	AccountID string
	Role      entity.Role
	SocietyID *string
}

// RequireRole fails with Forbidden unless the caller holds the given role.
func (c *AccessContext) RequireRole(role entity.Role) error {
	if c.Role != role {
		return errorz.Forbidden
	}
	return nil
}

// RequireSociety returns the society the caller acts for. A society account
// that no admin has linked yet is authenticated but not provisioned, which is
// a distinct failure from Forbidden.
func (c *AccessContext) RequireSociety() (string, error) {
	if c.Role != entity.RoleSociety {
		return "", errorz.Forbidden
	}
	if c.SocietyID == nil {
		return "", errorz.NotProvisioned
	}
	return *c.SocietyID, nil
}

type authAccountStorage interface {
	Get(ctx context.Context, id string) (*entity.Account, error)
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
}

type sessionStorage interface {
	Get(ctx context.Context, token string) (string, error)
	Set(ctx context.Context, token, accountID string, expiration time.Duration) error
	Delete(ctx context.Context, token string) error
}

type AuthService struct {
	accountStorage authAccountStorage
	sessionStorage sessionStorage
	sessionTTL     time.Duration
}

func NewAuthService(accountStorage authAccountStorage, sessionStorage sessionStorage, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		accountStorage: accountStorage,
		sessionStorage: sessionStorage,
		sessionTTL:     sessionTTL,
	}
}

// Login resolves the identifier (username or email) to an account, verifies
// the password and, when expectedRole is set, that the account actually
// holds that role. On success it issues an opaque session token.
func (s *AuthService) Login(ctx context.Context, identifier, password string, expectedRole entity.Role) (string, *entity.Account, error) {
	var (
		account *entity.Account
		err     error
	)
	if strings.Contains(identifier, "@") {
		account, err = s.accountStorage.GetByEmail(ctx, identifier)
	} else {
		account, err = s.accountStorage.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errorz.NotFound
		}
		return "", nil, err
	}

	if expectedRole != "" && account.Role != expectedRole {
		return "", nil, errorz.RoleMismatch
	}

	if err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, errorz.InvalidCredentials
	}

	token, err := generateToken(32)
	if err != nil {
		return "", nil, err
	}
	if err = s.sessionStorage.Set(ctx, token, account.ID, s.sessionTTL); err != nil {
		return "", nil, err
	}

	return token, account, nil
}

// Resolve turns a session token into an AccessContext. An unknown or expired
// token, and a token whose account has vanished, both fail Unauthenticated.
func (s *AuthService) Resolve(ctx context.Context, token string) (*AccessContext, error) {
	if token == "" {
		return nil, errorz.Unauthenticated
	}

	accountID, err := s.sessionStorage.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if accountID == "" {
		return nil, errorz.Unauthenticated
	}

	account, err := s.accountStorage.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.Unauthenticated
		}
		return nil, err
	}

	return &AccessContext{
		AccountID: account.ID,
		Role:      account.Role,
		SocietyID: account.SocietyID,
	}, nil
}

// Logout drops the session. Dropping an already-dropped token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessionStorage.Delete(ctx, token)
}

func generateToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
