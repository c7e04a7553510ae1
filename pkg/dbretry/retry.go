package dbretry

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/sethvargo/go-retry"

	"github.com/m04kA/lab-booking-service/pkg/dbmetrics"
)

const (
	// DefaultAttempts общее число попыток чтения
	DefaultAttempts = 3

	// DefaultBaseDelay начальная задержка экспоненциального backoff
	DefaultBaseDelay = 50 * time.Millisecond
)

// Do выполняет чтение fn, повторяя его при временных ошибках соединения
// Внутри транзакции fn выполняется один раз
func Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	backoff := retry.WithMaxRetries(DefaultAttempts-1, retry.NewExponential(DefaultBaseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && IsTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

// IsTransient возвращает true для ошибок, после которых запрос стоит повторить:
// разорванное соединение, класс SQLSTATE 08 и admin_shutdown (57P01)
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return strings.HasPrefix(code, "08") || code == "57P01"
	}

	return false
}
