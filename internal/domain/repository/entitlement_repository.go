package repository

import (
	"context"

	"panel/internal/domain/entity"
)

// EntitlementRepository stores per-user premium records.
type EntitlementRepository interface {
	// FindByUserID returns ErrEntitlementNotFound when the user has no
	// record yet; the tier of such a user is Standard.
	FindByUserID(ctx context.Context, userID string) (*entity.UserEntitlement, error)

	// FindByUserIDForUpdate behaves like FindByUserID but takes a row lock,
	// so a transactional read-modify-write cannot race a concurrent writer.
	// Only meaningful on repositories obtained from a RepositoryFactory.
	FindByUserIDForUpdate(ctx context.Context, userID string) (*entity.UserEntitlement, error)

	// Save upserts the record keyed by user ID in a single statement.
	Save(ctx context.Context, entitlement *entity.UserEntitlement) error
}

// PaymentCaptureRepository stores the dedupe set of processed captures.
type PaymentCaptureRepository interface {
	// Create inserts the capture record, returning ErrDuplicateCapture
	// when the capture ID is already present.
	Create(ctx context.Context, capture *entity.PaymentCapture) error
}
