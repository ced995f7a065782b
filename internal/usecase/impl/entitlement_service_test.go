package impl

import (
	"context"
	"net/http"
	"testing"
	"time"

	"panel/config"
	"panel/internal/domain/entity"
	domainerrors "panel/internal/domain/errors"
	"panel/internal/domain/repository"
	"panel/internal/domain/service"
	mockRepo "panel/internal/mocks/repository"
	mockSvc "panel/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEntitlementService(t *testing.T) (*entitlementService, *mockRepo.MockEntitlementRepository, *mockRepo.MockPaymentCaptureRepository, *mockSvc.MockPaymentService) {
	t.Helper()

	entitlementRepo := mockRepo.NewMockEntitlementRepository(t)
	captureRepo := mockRepo.NewMockPaymentCaptureRepository(t)
	paymentSvc := mockSvc.NewMockPaymentService(t)

	uc := NewEntitlementService(EntitlementServiceParams{
		TxManager: &fakeTxManager{factory: &fakeRepositoryFactory{
			entitlementRepo: entitlementRepo,
			captureRepo:     captureRepo,
		}},
		EntitlementRepo: entitlementRepo,
		PaymentService:  paymentSvc,
		Config: &config.Config{Premium: &config.PremiumConfig{
			TrialDuration:    24 * time.Hour,
			PurchaseDuration: 30 * 24 * time.Hour,
		}},
		Logger: newTestLogger(),
	})

	return uc.(*entitlementService), entitlementRepo, captureRepo, paymentSvc
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.ErrorCode())
}

func TestEntitlementService_Status_NoRecordIsStandard(t *testing.T) {
	uc, entitlementRepo, _, _ := newEntitlementService(t)
	ctx := context.Background()

	entitlementRepo.EXPECT().
		FindByUserID(ctx, "user-1").
		Return(nil, repository.ErrEntitlementNotFound)

	status, err := uc.Status(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.GradeStandard, status.Grade)
	assert.Nil(t, status.VIPExpiresAt)
	assert.False(t, status.UsedTrial)
}

func TestEntitlementService_Status_ExpiredRecordIsStandard(t *testing.T) {
	uc, entitlementRepo, _, _ := newEntitlementService(t)
	ctx := context.Background()

	expired := time.Now().Add(-time.Minute)
	entitlementRepo.EXPECT().
		FindByUserID(ctx, "user-1").
		Return(&entity.UserEntitlement{UserID: "user-1", VIPExpiresAt: &expired, UsedTrial: true}, nil)

	status, err := uc.Status(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.GradeStandard, status.Grade)
	assert.True(t, status.UsedTrial)
}

func TestEntitlementService_ClaimTrial_FirstClaim(t *testing.T) {
	uc, entitlementRepo, _, _ := newEntitlementService(t)
	ctx := context.Background()
	before := time.Now()

	entitlementRepo.EXPECT().
		FindByUserIDForUpdate(ctx, "user-1").
		Return(nil, repository.ErrEntitlementNotFound)

	var saved *entity.UserEntitlement
	entitlementRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.UserEntitlement")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.UserEntitlement)
		}).
		Return(nil)

	status, err := uc.ClaimTrial(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.GradeVIP, status.Grade)
	assert.True(t, status.UsedTrial)

	require.NotNil(t, saved)
	require.NotNil(t, saved.VIPExpiresAt)
	assert.True(t, saved.UsedTrial)
	assert.WithinDuration(t, before.Add(24*time.Hour), *saved.VIPExpiresAt, 5*time.Second)
}

func TestEntitlementService_ClaimTrial_RejectedAfterTrialExpired(t *testing.T) {
	uc, entitlementRepo, _, _ := newEntitlementService(t)
	ctx := context.Background()

	// UsedTrial stays true forever, even after the trial period lapsed.
	expired := time.Now().Add(-48 * time.Hour)
	entitlementRepo.EXPECT().
		FindByUserIDForUpdate(ctx, "user-1").
		Return(&entity.UserEntitlement{UserID: "user-1", VIPExpiresAt: &expired, UsedTrial: true}, nil)

	status, err := uc.ClaimTrial(ctx, "user-1")
	require.Error(t, err)
	assert.Nil(t, status)
	assertErrorCode(t, err, "REJECTED")
}

func TestEntitlementService_ClaimTrial_RejectedWhileVIP(t *testing.T) {
	uc, entitlementRepo, _, _ := newEntitlementService(t)
	ctx := context.Background()

	// A paying VIP who never used the trial still cannot claim it while
	// the paid period is active.
	active := time.Now().Add(10 * 24 * time.Hour)
	entitlementRepo.EXPECT().
		FindByUserIDForUpdate(ctx, "user-1").
		Return(&entity.UserEntitlement{UserID: "user-1", VIPExpiresAt: &active, UsedTrial: false}, nil)

	_, err := uc.ClaimTrial(ctx, "user-1")
	require.Error(t, err)
	assertErrorCode(t, err, "REJECTED")
}

func TestEntitlementService_ConfirmReturn_ExtendsFromCurrentExpiry(t *testing.T) {
	uc, entitlementRepo, captureRepo, paymentSvc := newEntitlementService(t)
	ctx := context.Background()
	now := time.Now()

	current := now.Add(10 * 24 * time.Hour)
	paymentSvc.EXPECT().
		CaptureOrder(ctx, "order-1").
		Return(&service.PaymentCaptureResult{CaptureID: "cap-1", UserID: "user-1", CapturedAt: now}, nil)

	captureRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.PaymentCapture")).
		Return(nil)

	// The reconciler must take the locked read, otherwise a concurrent
	// capture for the same user could overwrite this extension.
	entitlementRepo.EXPECT().
		FindByUserIDForUpdate(ctx, "user-1").
		Return(&entity.UserEntitlement{UserID: "user-1", VIPExpiresAt: &current}, nil)

	var saved *entity.UserEntitlement
	entitlementRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.UserEntitlement")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.UserEntitlement)
		}).
		Return(nil)

	require.NoError(t, uc.ConfirmReturn(ctx, "order-1"))

	// Paid time stacks: 10 remaining days plus the purchased 30.
	require.NotNil(t, saved)
	assert.WithinDuration(t, now.Add(40*24*time.Hour), *saved.VIPExpiresAt, 5*time.Second)
}

func TestEntitlementService_ConfirmReturn_ExpiredExtendsFromNow(t *testing.T) {
	uc, entitlementRepo, captureRepo, paymentSvc := newEntitlementService(t)
	ctx := context.Background()
	now := time.Now()

	lapsed := now.Add(-5 * 24 * time.Hour)
	paymentSvc.EXPECT().
		CaptureOrder(ctx, "order-1").
		Return(&service.PaymentCaptureResult{CaptureID: "cap-1", UserID: "user-1", CapturedAt: now}, nil)

	captureRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.PaymentCapture")).
		Return(nil)

	entitlementRepo.EXPECT().
		FindByUserIDForUpdate(ctx, "user-1").
		Return(&entity.UserEntitlement{UserID: "user-1", VIPExpiresAt: &lapsed}, nil)

	var saved *entity.UserEntitlement
	entitlementRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.UserEntitlement")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.UserEntitlement)
		}).
		Return(nil)

	require.NoError(t, uc.ConfirmReturn(ctx, "order-1"))

	require.NotNil(t, saved)
	assert.WithinDuration(t, now.Add(30*24*time.Hour), *saved.VIPExpiresAt, 5*time.Second)
}

func TestEntitlementService_ConfirmReturn_DuplicateCaptureIsNoOp(t *testing.T) {
	uc, _, captureRepo, paymentSvc := newEntitlementService(t)
	ctx := context.Background()

	paymentSvc.EXPECT().
		CaptureOrder(ctx, "order-1").
		Return(&service.PaymentCaptureResult{CaptureID: "cap-1", UserID: "user-1", CapturedAt: time.Now()}, nil)

	// The capture was already recorded; the transaction aborts before any
	// entitlement read or write.
	captureRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.PaymentCapture")).
		Return(repository.ErrDuplicateCapture)

	require.NoError(t, uc.ConfirmReturn(ctx, "order-1"))
}

func TestEntitlementService_HandleWebhook_RejectsUnverified(t *testing.T) {
	uc, _, _, paymentSvc := newEntitlementService(t)
	ctx := context.Background()
	body := []byte(`{"event_type":"PAYMENT.CAPTURE.COMPLETED"}`)
	headers := http.Header{"Paypal-Transmission-Id": {"t-1"}}

	paymentSvc.EXPECT().
		VerifyWebhook(ctx, headers, body).
		Return(false, nil)

	err := uc.HandleWebhook(ctx, headers, body)
	require.Error(t, err)
	assertErrorCode(t, err, "WEBHOOK_VERIFICATION_FAILED")
}

func TestEntitlementService_HandleWebhook_IgnoresNonCaptureEvents(t *testing.T) {
	uc, _, _, paymentSvc := newEntitlementService(t)
	ctx := context.Background()
	body := []byte(`{"event_type":"CHECKOUT.ORDER.APPROVED"}`)
	headers := http.Header{}

	paymentSvc.EXPECT().
		VerifyWebhook(ctx, headers, body).
		Return(true, nil)

	paymentSvc.EXPECT().
		ParseWebhookEvent(body).
		Return(nil, nil)

	require.NoError(t, uc.HandleWebhook(ctx, headers, body))
}

func TestEntitlementService_HandleWebhook_AppliesVerifiedCapture(t *testing.T) {
	uc, entitlementRepo, captureRepo, paymentSvc := newEntitlementService(t)
	ctx := context.Background()
	now := time.Now()
	body := []byte(`{"event_type":"PAYMENT.CAPTURE.COMPLETED"}`)
	headers := http.Header{}

	paymentSvc.EXPECT().
		VerifyWebhook(ctx, headers, body).
		Return(true, nil)

	paymentSvc.EXPECT().
		ParseWebhookEvent(body).
		Return(&service.PaymentCaptureResult{CaptureID: "cap-9", UserID: "user-2", CapturedAt: now}, nil)

	captureRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.PaymentCapture")).
		Return(nil)

	entitlementRepo.EXPECT().
		FindByUserIDForUpdate(ctx, "user-2").
		Return(nil, repository.ErrEntitlementNotFound)

	entitlementRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.UserEntitlement")).
		Return(nil)

	require.NoError(t, uc.HandleWebhook(ctx, headers, body))
}

func TestEntitlementService_CreatePayment_PropagatesProviderFailure(t *testing.T) {
	uc, _, _, paymentSvc := newEntitlementService(t)
	ctx := context.Background()

	paymentSvc.EXPECT().
		CreateOrder(ctx, "user-1").
		Return(nil, errors.New("provider down"))

	output, err := uc.CreatePayment(ctx, "user-1")
	assert.Error(t, err)
	assert.Nil(t, output)
}
