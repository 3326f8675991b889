package usecase

import (
	"context"

	"github.com/google/uuid"

	"go-clinic-backend/internal/delivery/http/middleware"
)

// actorID extracts the authenticated user for audit attribution, nil when
// the operation runs outside an authenticated request.
func actorID(ctx context.Context) *uuid.UUID {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &userID
}
