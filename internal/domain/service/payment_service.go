package service

import (
	"context"
	"net/http"
	"time"
)

// PaymentOrder is a provider order awaiting buyer approval.
type PaymentOrder struct {
	OrderID     string
	ApprovalURL string // Where the buyer is redirected to approve the payment.
}

// PaymentCaptureResult is a completed capture as reported by the provider.
// UserID travels through the provider as opaque order metadata, so the
// asynchronous webhook can attribute the purchase without a session.
type PaymentCaptureResult struct {
	CaptureID  string
	UserID     string
	CapturedAt time.Time
}

// PaymentService is the payment-provider client.
type PaymentService interface {
	// CreateOrder starts an order for the fixed premium price, embedding
	// the buyer's user ID as order metadata.
	CreateOrder(ctx context.Context, userID string) (*PaymentOrder, error)

	// CaptureOrder captures an approved order on the synchronous
	// browser-return path.
	CaptureOrder(ctx context.Context, orderID string) (*PaymentCaptureResult, error)

	// VerifyWebhook checks the notification's authenticity against the
	// provider using the raw, unparsed body. A failed verification means
	// the payload must not be trusted at all.
	VerifyWebhook(ctx context.Context, headers http.Header, rawBody []byte) (bool, error)

	// ParseWebhookEvent extracts the capture from a verified notification
	// body. Non-capture event types return (nil, nil).
	ParseWebhookEvent(rawBody []byte) (*PaymentCaptureResult, error)
}
