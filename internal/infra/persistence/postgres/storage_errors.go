package postgres

import (
	"context"
	"database/sql/driver"
	"net"

	domainerrors "panel/internal/domain/errors"

	"github.com/pkg/errors"
)

// wrapStorageError converts connectivity failures into the domain's
// storage-unavailable error so handlers degrade to a clear 503 instead of
// an ambiguous internal error. Everything else is wrapped with context.
func wrapStorageError(err error, what string) error {
	if err == nil {
		return nil
	}

	if isStorageUnavailable(err) {
		return domainerrors.ErrStorageUnavailable.WrapMessage(what)
	}

	return errors.Wrap(err, what)
}

func isStorageUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}
