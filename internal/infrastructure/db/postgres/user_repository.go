package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
	"github.com/mateosvilasboas/infog2-crud/internal/core/ports"
)

// UserRepository implements ports.UserRepository on GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := userToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, r.conflictFor(ctx, user.Email)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return m.toDomain(), nil
}

// conflictFor decides which unique constraint lost a commit-time race by
// re-reading the winner. Email wins ties, matching the pre-insert check.
func (r *UserRepository) conflictFor(ctx context.Context, email string) error {
	var count int64
	if err := r.db.WithContext(ctx).Unscoped().Model(&userModel{}).
		Where("email = ?", email).Count(&count).Error; err == nil && count > 0 {
		return domain.ErrEmailExists
	}
	return domain.ErrCPFExists
}

func (r *UserRepository) FindByEmailOrCPF(ctx context.Context, email, cpf string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Unscoped().
		Where("email = ? OR cpf = ?", email, cpf).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email or cpf: %w", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Unscoped().First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindByIDAndRole(ctx context.Context, id uint, role string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Unscoped().
		Where("id = ? AND role = ?", id, role).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id and role: %w", err)
	}
	return m.toDomain(), nil
}

// List returns active users only; gorm.DeletedAt excludes soft-deleted rows
// from the default scope.
func (r *UserRepository) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, error) {
	q := r.db.WithContext(ctx).Model(&userModel{})
	if filter.Email != "" {
		q = q.Where("email = ?", filter.Email)
	}
	if filter.Name != "" {
		q = q.Where("name = ?", filter.Name)
	}

	var models []userModel
	err := q.Order("id").Offset(filter.Offset).Limit(filter.Limit).Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*domain.User, 0, len(models))
	for i := range models {
		users = append(users, models[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	err := r.db.WithContext(ctx).Unscoped().Model(&userModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":          user.Name,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
		}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return r.FindByID(ctx, user.ID)
}

func (r *UserRepository) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", id).
		Update("deleted_at", at).Error
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	return nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
