package usecase

import (
	"context"
	"net/http"
	"time"

	"panel/internal/domain/entity"
)

// --- Output DTOs ---

// EntitlementStatus is the caller-visible view of their premium record.
type EntitlementStatus struct {
	Grade        entity.Grade
	VIPExpiresAt *time.Time
	UsedTrial    bool
}

// CreatePaymentOutput returns the provider order awaiting buyer approval.
type CreatePaymentOutput struct {
	OrderID     string
	ApprovalURL string
}

// EntitlementUsecase defines the interface for premium tier operations:
// trial claims, payment orders and purchase confirmation from both delivery
// paths.
type EntitlementUsecase interface {
	// Status derives the caller's current tier. A user with no record is
	// Standard.
	Status(ctx context.Context, userID string) (*EntitlementStatus, error)

	// ClaimTrial grants the one-time trial period. Refused with ErrRejected
	// when the caller already has an active entitlement or has ever used
	// the trial, including after it expired.
	ClaimTrial(ctx context.Context, userID string) (*EntitlementStatus, error)

	// CreatePayment starts a provider order for the fixed premium price.
	CreatePayment(ctx context.Context, userID string) (*CreatePaymentOutput, error)

	// ConfirmReturn captures an approved order on the browser-return path
	// and applies the purchase.
	ConfirmReturn(ctx context.Context, orderID string) error

	// HandleWebhook verifies and applies an asynchronous provider
	// notification. The raw body must be the exact received bytes.
	// Unverified notifications are rejected without any state change.
	HandleWebhook(ctx context.Context, headers http.Header, rawBody []byte) error
}
