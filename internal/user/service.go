package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/humyn-ai/humyn/go/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrGoogleAccount      = errors.New("account uses Google sign-in")
)

type Service interface {
	RegisterEmail(ctx context.Context, email, password string) (*models.Account, error)
	AuthenticateEmail(ctx context.Context, email, password string) (*models.Account, error)
	GetOrCreateGoogle(ctx context.Context, email, name, picture string) (*models.Account, error)
}

type AccountService struct {
	repo Repository
}

func NewAccountService(repo Repository) *AccountService {
	return &AccountService{repo: repo}
}

func (s *AccountService) RegisterEmail(ctx context.Context, email, password string) (*models.Account, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	account := newAccount(email, models.ProviderEmail)
	account.PasswordHash = &hashStr

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) AuthenticateEmail(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if account.Provider == models.ProviderGoogle {
		return nil, ErrGoogleAccount
	}

	if account.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}

func (s *AccountService) GetOrCreateGoogle(ctx context.Context, email, name, picture string) (*models.Account, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	account = newAccount(email, models.ProviderGoogle)
	if name != "" {
		account.Name = name
	}
	account.Picture = picture

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func newAccount(email string, provider models.Provider) *models.Account {
	return &models.Account{
		ID:            uuid.New().String(),
		Email:         email,
		Name:          strings.SplitN(email, "@", 2)[0],
		Provider:      provider,
		Role:          models.RoleUser,
		Plan:          models.PlanFree,
		UsageCount:    0,
		MaxUsage:      models.DefaultMaxUsage,
		LastResetDate: time.Now(),
	}
}
