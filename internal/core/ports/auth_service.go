package ports

import (
	"context"
	"time"

	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
)

type AuthService interface {
	// Login verifies credentials and returns a signed bearer token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the token identified by jti until it would have expired.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}
