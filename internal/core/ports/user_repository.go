package ports

import (
	"context"
	"time"

	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing users.
// Filters are exact-match and conjunctive. Soft-deleted users are always
// excluded by the repository.
type ListUsersFilter struct {
	Email  string
	Name   string
	Offset int
	Limit  int
}

// UserRepository defines persistence operations for users. Lookups used for
// uniqueness checks and soft-delete bookkeeping span deleted rows; listing
// and credential lookups see active rows only.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByEmailOrCPF returns any user (deleted or not) matching either
	// field. Used for the registration uniqueness check, which covers the
	// whole identity space.
	FindByEmailOrCPF(ctx context.Context, email, cpf string) (*domain.User, error)

	// FindByEmail returns an active user by email (login path).
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID returns a user by id, including soft-deleted ones, so that a
	// repeated delete can be detected and reported instead of returning 404.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// FindByIDAndRole returns a user matching both id and role, including
	// soft-deleted ones. A role mismatch reads as ErrUserNotFound.
	FindByIDAndRole(ctx context.Context, id uint, role string) (*domain.User, error)

	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)

	// Update persists name/email/password changes. A unique-constraint
	// violation is translated to domain.ErrEmailExists.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)

	SoftDelete(ctx context.Context, id uint, at time.Time) error
}
