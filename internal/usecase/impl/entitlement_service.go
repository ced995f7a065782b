package impl

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"panel/config"
	deliverycontext "panel/internal/delivery/context"
	"panel/internal/domain/entity"
	domainerrors "panel/internal/domain/errors"
	"panel/internal/domain/repository"
	"panel/internal/domain/service"
	"panel/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// entitlementService implements the EntitlementUsecase interface.
type entitlementService struct {
	txManager        repository.TransactionManager
	entitlementRepo  repository.EntitlementRepository
	paymentService   service.PaymentService
	trialDuration    time.Duration
	purchaseDuration time.Duration
	logger           *slog.Logger
}

// EntitlementServiceParams holds dependencies for entitlementService, injected by Fx.
type EntitlementServiceParams struct {
	fx.In

	TxManager       repository.TransactionManager
	EntitlementRepo repository.EntitlementRepository
	PaymentService  service.PaymentService
	Config          *config.Config
	Logger          *slog.Logger
}

// NewEntitlementService is the constructor for entitlementService.
func NewEntitlementService(params EntitlementServiceParams) usecase.EntitlementUsecase {
	trialDuration := 24 * time.Hour
	purchaseDuration := 30 * 24 * time.Hour
	if params.Config != nil && params.Config.Premium != nil {
		if params.Config.Premium.TrialDuration > 0 {
			trialDuration = params.Config.Premium.TrialDuration
		}
		if params.Config.Premium.PurchaseDuration > 0 {
			purchaseDuration = params.Config.Premium.PurchaseDuration
		}
	}

	return &entitlementService{
		txManager:        params.TxManager,
		entitlementRepo:  params.EntitlementRepo,
		paymentService:   params.PaymentService,
		trialDuration:    trialDuration,
		purchaseDuration: purchaseDuration,
		logger:           params.Logger,
	}
}

func (srv *entitlementService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Status derives the caller's current tier at read time. No background job
// ever flips a tier; crossing the expiry instant is enough.
func (srv *entitlementService) Status(ctx context.Context, userID string) (*usecase.EntitlementStatus, error) {
	entitlement, err := srv.entitlementRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrEntitlementNotFound) {
			return &usecase.EntitlementStatus{Grade: entity.GradeStandard}, nil
		}

		return nil, errors.Wrap(err, "failed to load entitlement")
	}

	return &usecase.EntitlementStatus{
		Grade:        entitlement.GradeAt(time.Now()),
		VIPExpiresAt: entitlement.VIPExpiresAt,
		UsedTrial:    entitlement.UsedTrial,
	}, nil
}

// ClaimTrial grants the one-time trial. The check and the write share one
// transaction so two racing claims cannot both succeed.
func (srv *entitlementService) ClaimTrial(ctx context.Context, userID string) (*usecase.EntitlementStatus, error) {
	now := time.Now()
	var granted *entity.UserEntitlement

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		entitlementRepo := repoFactory.NewEntitlementRepository()

		entitlement, err := entitlementRepo.FindByUserIDForUpdate(ctx, userID)
		if errors.Is(err, repository.ErrEntitlementNotFound) {
			entitlement = &entity.UserEntitlement{UserID: userID, CreatedAt: now}
		} else if err != nil {
			return errors.Wrap(err, "failed to load entitlement")
		}

		if entitlement.UsedTrial {
			return domainerrors.ErrRejected.WithMessage("Trial already used.")
		}
		if entitlement.GradeAt(now) == entity.GradeVIP {
			return domainerrors.ErrRejected.WithMessage("You already have an active VIP period.")
		}

		expires := now.Add(srv.trialDuration)
		entitlement.VIPExpiresAt = &expires
		entitlement.UsedTrial = true
		entitlement.UpdatedAt = now

		if err := entitlementRepo.Save(ctx, entitlement); err != nil {
			return errors.Wrap(err, "failed to save trial entitlement")
		}

		granted = entitlement

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Trial claimed", slog.String("userID", userID))

	return &usecase.EntitlementStatus{
		Grade:        granted.GradeAt(now),
		VIPExpiresAt: granted.VIPExpiresAt,
		UsedTrial:    granted.UsedTrial,
	}, nil
}

// CreatePayment starts a provider order for the fixed premium price.
func (srv *entitlementService) CreatePayment(ctx context.Context, userID string) (*usecase.CreatePaymentOutput, error) {
	order, err := srv.paymentService.CreateOrder(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to create payment order", slog.String("userID", userID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Payment order created", slog.String("userID", userID), slog.String("orderID", order.OrderID))

	return &usecase.CreatePaymentOutput{
		OrderID:     order.OrderID,
		ApprovalURL: order.ApprovalURL,
	}, nil
}

// ConfirmReturn captures an approved order on the browser-return path and
// applies the purchase. The webhook may deliver the same capture again; the
// dedupe in confirmPayment makes the pair converge on a single extension.
func (srv *entitlementService) ConfirmReturn(ctx context.Context, orderID string) error {
	capture, err := srv.paymentService.CaptureOrder(ctx, orderID)
	if err != nil {
		srv.log(ctx).Error("Order capture failed", slog.String("orderID", orderID), slog.Any("error", err))

		return err
	}

	return srv.confirmPayment(ctx, capture)
}

// HandleWebhook verifies and applies an asynchronous provider notification.
// An unverified notification is rejected outright; its payload is never
// parsed for content.
func (srv *entitlementService) HandleWebhook(ctx context.Context, headers http.Header, rawBody []byte) error {
	verified, err := srv.paymentService.VerifyWebhook(ctx, headers, rawBody)
	if err != nil {
		srv.log(ctx).Error("Webhook verification errored", slog.Any("error", err))

		return err
	}
	if !verified {
		srv.log(ctx).Warn("Rejected unverified webhook")

		return domainerrors.ErrWebhookVerificationFailed.WrapMessage("provider did not verify the notification")
	}

	capture, err := srv.paymentService.ParseWebhookEvent(rawBody)
	if err != nil {
		return errors.Wrap(err, "failed to parse webhook event")
	}
	if capture == nil {
		// Not a capture event; acknowledge without touching anything.
		return nil
	}

	return srv.confirmPayment(ctx, capture)
}

// confirmPayment is the single funnel for both delivery paths. Recording the
// capture ID and extending the expiry happen in one transaction: a capture
// ID seen before short-circuits to a successful no-op, so N deliveries of
// the same capture yield exactly one extension.
func (srv *entitlementService) confirmPayment(ctx context.Context, capture *service.PaymentCaptureResult) error {
	now := time.Now()

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		captureRepo := repoFactory.NewPaymentCaptureRepository()
		entitlementRepo := repoFactory.NewEntitlementRepository()

		err := captureRepo.Create(ctx, &entity.PaymentCapture{
			CaptureID:  capture.CaptureID,
			UserID:     capture.UserID,
			CapturedAt: capture.CapturedAt,
			CreatedAt:  now,
		})
		if err != nil {
			return errors.Wrap(err, "failed to record payment capture")
		}

		// The locked read keeps concurrent reconcilers for the same user
		// serial; without it two distinct captures both read the same expiry
		// and the second upsert discards the first extension.
		entitlement, err := entitlementRepo.FindByUserIDForUpdate(ctx, capture.UserID)
		if errors.Is(err, repository.ErrEntitlementNotFound) {
			entitlement = &entity.UserEntitlement{UserID: capture.UserID, CreatedAt: now}
		} else if err != nil {
			return errors.Wrap(err, "failed to load entitlement")
		}

		entitlement.ExtendVIP(now, srv.purchaseDuration)
		entitlement.UpdatedAt = now

		if err := entitlementRepo.Save(ctx, entitlement); err != nil {
			return errors.Wrap(err, "failed to save extended entitlement")
		}

		return nil
	})

	if errors.Is(err, repository.ErrDuplicateCapture) {
		srv.log(ctx).Info("Duplicate capture acknowledged", slog.String("captureID", capture.CaptureID))

		return nil
	}
	if err != nil {
		srv.log(ctx).Error("Failed to confirm payment", slog.String("captureID", capture.CaptureID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute payment confirmation transaction")
	}

	srv.log(ctx).Info("Payment confirmed", slog.String("userID", capture.UserID), slog.String("captureID", capture.CaptureID))

	return nil
}
