package handler

import (
	"io"
	"log/slog"
	"net/http"

	deliverycontext "panel/internal/delivery/context"
	"panel/internal/delivery/http/response"
	"panel/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PaymentHandler holds dependencies for payment and trial routes.
type PaymentHandler struct {
	uc     usecase.EntitlementUsecase
	logger *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.EntitlementUsecase, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, logger: logger}
}

// CreatePayment starts a provider order and returns the approval URL the
// browser must visit.
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	session := deliverycontext.GetSession(c)

	output, err := h.uc.CreatePayment(c.Request().Context(), session.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"orderId":     output.OrderID,
		"approvalUrl": output.ApprovalURL,
	}, "Payment order created")
}

// ClaimTrial grants the one-time trial period.
func (h *PaymentHandler) ClaimTrial(c echo.Context) error {
	session := deliverycontext.GetSession(c)

	status, err := h.uc.ClaimTrial(c.Request().Context(), session.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"grade":        status.Grade,
		"vipExpiresAt": status.VIPExpiresAt,
	}, "Trial claimed")
}

// Webhook receives asynchronous provider notifications. The body is read
// raw and passed through untouched: verification is computed over the exact
// received bytes, and a re-serialized body would not verify. A failure
// status tells the provider to retry; nothing here is user-visible.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	rawBody, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "WEBHOOK_VERIFICATION_FAILED", "unreadable body")
	}

	if err := h.uc.HandleWebhook(c.Request().Context(), c.Request().Header, rawBody); err != nil {
		h.logger.Warn("Webhook rejected", slog.Any("error", err))

		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusOK)
}
