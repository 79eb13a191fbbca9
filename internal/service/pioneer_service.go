package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/edunari/marketplace-api/internal/models"
	"github.com/edunari/marketplace-api/internal/repository"
	"github.com/google/uuid"
)

var ErrMissingPioneerFields = errors.New("name and email are required")

// PioneerService handles early-access registrations.
type PioneerService struct {
	repo repository.PioneerRepository
}

// NewPioneerService creates a new pioneer service.
func NewPioneerService(repo repository.PioneerRepository) *PioneerService {
	return &PioneerService{repo: repo}
}

// Register records a new pioneer sign-up.
func (s *PioneerService) Register(ctx context.Context, name, email, phone string) (*models.Pioneer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, ErrMissingPioneerFields
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	pioneer := models.Pioneer{
		ID:           uuid.New().String(),
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(phone),
	}

	if err := s.repo.Create(ctx, pioneer); err != nil {
		return nil, err
	}
	return &pioneer, nil
}

// List returns all registered pioneers.
func (s *PioneerService) List(ctx context.Context) ([]models.Pioneer, error) {
	return s.repo.List(ctx)
}
