package ports

import (
	"context"

	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
)

// RegisterUserInput carries all data needed to create a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	CPF      string
	Password string
	Role     string
}

// UpdateUserInput carries a self-service profile update. Name and email are
// applied unconditionally; the password is only re-hashed when non-empty.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
}

// ListUsersInput carries the admin listing parameters.
type ListUsersInput struct {
	Email  string
	Name   string
	Offset int
	Limit  int
}

// UserService defines the user registry use cases.
type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	List(ctx context.Context, input ListUsersInput) ([]*domain.User, error)
	SoftDelete(ctx context.Context, id uint, role string) error
	UpdateSelf(ctx context.Context, callerID, targetID uint, input UpdateUserInput) (*domain.User, error)
	SoftDeleteSelf(ctx context.Context, callerID, targetID uint) error
}
