package impl

import (
	"context"
	"io"
	"log/slog"

	"panel/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// anyCtx matches any context argument; fan-out fetches run with a derived
// group context, not the caller's.
var anyCtx = mock.Anything

// fakeRepositoryFactory hands out the test's mock repositories as if they
// were transaction-bound.
type fakeRepositoryFactory struct {
	entitlementRepo repository.EntitlementRepository
	captureRepo     repository.PaymentCaptureRepository
}

func (f *fakeRepositoryFactory) NewEntitlementRepository() repository.EntitlementRepository {
	return f.entitlementRepo
}

func (f *fakeRepositoryFactory) NewPaymentCaptureRepository() repository.PaymentCaptureRepository {
	return f.captureRepo
}

// fakeTxManager runs the callback directly; commit/rollback semantics are
// covered by the postgres implementation, not these tests.
type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f.factory)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
