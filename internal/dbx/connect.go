package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cloudstack/internal/logging"
	"github.com/sethvargo/go-retry"
)

// ErrStorageUnavailable is returned by Connect once every attempt failed.
var ErrStorageUnavailable = errors.New("storage unavailable")

// RetryPolicy bounds the connection attempts made at startup.
// Attempts counts the first try, so Attempts=1 means no retry.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// pingDB is a seam for tests.
var pingDB = func(ctx context.Context, db *sql.DB) error {
	return db.PingContext(ctx)
}

// Connect opens a pool for driver/dsn and pings it until it answers or the
// policy is exhausted. The delay between attempts is fixed.
func Connect(ctx context.Context, driver, dsn string, policy RetryPolicy, logger logging.Logger) (*sql.DB, error) {
	if policy.Attempts < 1 {
		return nil, fmt.Errorf("retry policy: attempts must be >= 1, got %d", policy.Attempts)
	}
	if policy.Delay <= 0 {
		return nil, fmt.Errorf("retry policy: delay must be positive, got %s", policy.Delay)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	b := retry.WithMaxRetries(uint64(policy.Attempts-1), retry.NewConstant(policy.Delay))

	attempt := 0
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		if err := pingDB(ctx, db); err != nil {
			logger.Warn(ctx, "database not ready yet, retrying",
				"attempt", attempt, "max_attempts", policy.Attempts, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w after %d attempts: %v", ErrStorageUnavailable, attempt, err)
	}

	logger.Info(ctx, "database connection established", "attempts", attempt)
	return db, nil
}
