package repository

import (
	"context"

	"go-clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository has a sibling implementation per backend; the factory
// exports whichever matches the selector, so callers stay backend-agnostic.
type UserRepository interface {
	// Create inserts the user and fills server-assigned fields in place.
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail returns (nil, nil) when no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByID returns (nil, nil) when no user matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Update applies a partial update and returns the updated user.
	Update(ctx context.Context, id uuid.UUID, values map[string]any) (*entity.User, error)
}
