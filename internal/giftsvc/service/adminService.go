package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avvvet/giftcard-services/internal/giftsvc/metrics"
	"github.com/avvvet/giftcard-services/internal/giftsvc/models"
	"github.com/avvvet/giftcard-services/internal/giftsvc/store"
	"github.com/avvvet/giftcard-services/internal/giftsvc/token"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const DefaultBcryptCost = 12

type AdminService struct {
	admins store.AdminStore
	tokens *token.Service
	cost   int
	now    func() time.Time
}

func NewAdminService(admins store.AdminStore, tokens *token.Service) *AdminService {
	return &AdminService{
		admins: admins,
		tokens: tokens,
		cost:   DefaultBcryptCost,
		now:    time.Now,
	}
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *AdminService) WithCost(cost int) *AdminService {
	s.cost = cost
	return s
}

func (s *AdminService) Exists(ctx context.Context) (bool, error) {
	admin, err := s.admins.FindAdmin(ctx)
	if err != nil {
		return false, err
	}
	return admin != nil, nil
}

// Register creates the single admin account. The existing-admin check
// runs before field validation, so a second attempt is always refused.
func (s *AdminService) Register(ctx context.Context, email, password string) error {
	exists, err := s.Exists(ctx)
	if err != nil {
		return fmt.Errorf("find admin: %w", err)
	}
	if exists {
		return ErrAdminExists
	}

	if email == "" || password == "" {
		return ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		log.Errorf("Error hashing admin password: %v", err)
		return fmt.Errorf("%w: %v", ErrRegistration, err)
	}

	admin := &models.Admin{
		Email:        email,
		Password:     string(hash),
		RegisteredAt: models.FormatTime(s.now()),
	}
	if err := s.admins.InsertAdmin(ctx, admin); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return ErrAdminExists
		}
		log.Errorf("Error inserting admin: %v", err)
		return fmt.Errorf("%w: %v", ErrRegistration, err)
	}

	log.Infof("admin registered: %s", email)
	return nil
}

// Login checks the credentials against the stored admin and issues a token.
func (s *AdminService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	admin, err := s.admins.FindAdmin(ctx)
	if err != nil {
		return "", fmt.Errorf("find admin: %w", err)
	}
	if admin == nil {
		return "", ErrNoAdmin
	}

	err = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password))
	switch {
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		metrics.IncAdminLogin("invalid")
		return "", ErrInvalidCredentials
	case err != nil:
		metrics.IncAdminLogin("error")
		log.Errorf("Error comparing admin password: %v", err)
		return "", fmt.Errorf("%w: %v", ErrLogin, err)
	}

	if admin.Email != email {
		metrics.IncAdminLogin("invalid")
		return "", ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(email)
	if err != nil {
		metrics.IncAdminLogin("error")
		return "", fmt.Errorf("%w: %v", ErrLogin, err)
	}

	metrics.IncAdminLogin("success")
	return tok, nil
}

// Authenticate returns the email carried by a valid, unexpired token.
func (s *AdminService) Authenticate(tok string) (string, error) {
	p, err := s.tokens.Verify(tok)
	if err != nil {
		return "", err
	}
	return p.Email, nil
}
