package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Muratozbk/support-desk/internal/auth"
	"github.com/Muratozbk/support-desk/internal/errs"
	"github.com/Muratozbk/support-desk/internal/model"
)

// UserServicer is the account contract consumed by handlers.
type UserServicer interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Get(ctx context.Context, uid string) (*model.User, error)
}

// UserService handles registration, login and profile lookup. It issues the
// bearer tokens that the rest of the API resolves to a caller identity.
type UserService struct {
	db        *gorm.DB
	passwords *auth.PasswordService
	tokens    *auth.TokenService
}

func NewUserService(db *gorm.DB, passwords *auth.PasswordService, tokens *auth.TokenService) *UserService {
	return &UserService{db: db, passwords: passwords, tokens: tokens}
}

// Register creates an account and returns it with a signed access token.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, "", errs.ErrInvalidInput
	}

	var existing model.User
	err := s.db.WithContext(ctx).First(&existing, "email = ?", email).Error
	if err == nil {
		return nil, "", errs.ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, "", errs.ErrInvalidInput
	}
	u := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
// A wrong email and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", errs.ErrInvalidInput
	}
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", errs.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := s.passwords.Verify(u.PasswordHash, password); err != nil {
		return nil, "", errs.ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return nil, "", err
	}
	return &u, token, nil
}

func (s *UserService) Get(ctx context.Context, uid string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
