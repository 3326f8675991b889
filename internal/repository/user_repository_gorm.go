package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

type userRepositoryGorm struct {
	db *gorm.DB
}

// NewUserRepositoryGorm is the fluent-builder sibling of the user
// repository.
func NewUserRepositoryGorm(db *gorm.DB) domainRepo.UserRepository {
	return &userRepositoryGorm{db: db}
}

func (r *userRepositoryGorm) Create(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", dataaccess.TranslateGormError(err))
	}
	return nil
}

func (r *userRepositoryGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepositoryGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepositoryGorm) Update(ctx context.Context, id uuid.UUID, values map[string]any) (*entity.User, error) {
	if err := dataaccess.CheckColumns("users", columnNames(values)...); err != nil {
		return nil, err
	}
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return nil, fmt.Errorf("update user %s: %w", id, dataaccess.TranslateGormError(res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("update user %s: %w", id, dataaccess.ErrNotFound)
	}
	return r.FindByID(ctx, id)
}

func (r *userRepositoryGorm) findOne(ctx context.Context, cond string, arg any) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where(cond, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", dataaccess.TranslateGormError(err))
	}
	return &user, nil
}
