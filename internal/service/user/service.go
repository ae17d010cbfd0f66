package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository"
	"github.com/hospitalvida/atendimento-api/pkg/email"
	"github.com/hospitalvida/atendimento-api/pkg/security"
)

// Service manages staff accounts and their roles.
type Service struct {
	repo     repository.UserRepository
	hasher   security.PasswordHasher
	emailSvc email.Service
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher, emailSvc email.Service) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		emailSvc: emailSvc,
	}
}

// CreateUser registers a staff account. When no password is supplied one is
// generated and mailed to the new user; mail failure does not roll back the
// account.
func (s *Service) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	password := req.Password
	generated := false
	if password == "" {
		var err error
		password, err = security.GeneratePassword()
		if err != nil {
			return nil, fmt.Errorf("failed to generate password: %w", err)
		}
		generated = true
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if generated && s.emailSvc != nil {
		if err := s.emailSvc.SendCredentials(ctx, user.Email, user.Name, password); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("failed to send credentials mail")
		}
	}

	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	return s.repo.UpdateRole(ctx, id, role)
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
