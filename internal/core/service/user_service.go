package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
	"github.com/mateosvilasboas/infog2-crud/internal/core/ports"
	"github.com/mateosvilasboas/infog2-crud/pkg/cpf"
)

const (
	defaultListLimit = 100
)

// UserService implements the user registry use cases.
type UserService struct {
	repo   ports.UserRepository
	events ports.EventPublisher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, events ports.EventPublisher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, events: events, logger: logger}
}

// Register creates a new user after checking that neither the email nor the
// CPF is taken anywhere in the identity space, deleted users included.
// Email is checked before CPF; the first match wins.
func (s *UserService) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrRoleNotFound
	}
	if !cpf.Validate(input.CPF) {
		return nil, domain.ErrInvalidCPF
	}

	existing, err := s.repo.FindByEmailOrCPF(ctx, input.Email, input.CPF)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Email == input.Email {
			return nil, domain.ErrEmailExists
		}
		return nil, domain.ErrCPFExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		CPF:          input.CPF,
		PasswordHash: string(hash),
		Role:         input.Role,
	}

	// The pre-check and the insert are not one serializable transaction; a
	// concurrent registration can still lose the race and surface as a
	// unique-constraint violation here, already translated by the repository.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	s.publish(ports.LifecycleEvent{
		Kind:    ports.EventUserRegistered,
		Subject: created.Email,
		UserID:  created.ID,
		Role:    created.Role,
		At:      time.Now().UTC(),
	})

	return created, nil
}

// List returns active users matching the filter. Soft-deleted users are
// never included, regardless of filters.
func (s *UserService) List(ctx context.Context, input ports.ListUsersInput) ([]*domain.User, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	return s.repo.List(ctx, ports.ListUsersFilter{
		Email:  input.Email,
		Name:   input.Name,
		Offset: offset,
		Limit:  limit,
	})
}

// SoftDelete marks the user identified by id AND role as deleted. A role
// mismatch reads as not found; deleting twice reports ErrUserDeleted.
func (s *UserService) SoftDelete(ctx context.Context, id uint, role string) error {
	if !domain.ValidRole(role) {
		return domain.ErrRoleNotFound
	}

	user, err := s.repo.FindByIDAndRole(ctx, id, role)
	if err != nil {
		return err
	}
	if user.Deleted() {
		return domain.ErrUserDeleted
	}

	now := time.Now().UTC()
	if err := s.repo.SoftDelete(ctx, user.ID, now); err != nil {
		return err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user soft-deleted")
	s.publish(ports.LifecycleEvent{
		Kind:    ports.EventUserDeleted,
		Subject: user.Email,
		UserID:  user.ID,
		Role:    user.Role,
		At:      now,
	})

	return nil
}

// UpdateSelf updates the caller's own name and email, and re-hashes the
// password when a new one is supplied. Acting on another identity fails
// with ErrForbidden before any state change.
func (s *UserService) UpdateSelf(ctx context.Context, callerID, targetID uint, input ports.UpdateUserInput) (*domain.User, error) {
	if callerID != targetID {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Email = input.Email
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

// SoftDeleteSelf soft-deletes the caller's own account.
func (s *UserService) SoftDeleteSelf(ctx context.Context, callerID, targetID uint) error {
	if callerID != targetID {
		return domain.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, callerID)
	if err != nil {
		return err
	}
	if user.Deleted() {
		return domain.ErrUserDeleted
	}

	now := time.Now().UTC()
	if err := s.repo.SoftDelete(ctx, user.ID, now); err != nil {
		return err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("user deleted own account")
	s.publish(ports.LifecycleEvent{
		Kind:    ports.EventUserDeleted,
		Subject: user.Email,
		UserID:  user.ID,
		Role:    user.Role,
		At:      now,
	})

	return nil
}

func (s *UserService) publish(event ports.LifecycleEvent) {
	if s.events != nil {
		s.events.Publish(event)
	}
}
