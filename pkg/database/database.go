package database

import (
	"context"
	"time"

	"readinglist-backend/pkg/apperror"
	"readinglist-backend/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultTimeout bounds every store call so a slow database never hangs a
// request indefinitely.
const DefaultTimeout = 5 * time.Second

// NewPostgresConnection opens the pooled connection once at startup and
// returns a ready handle or an error. The handle is passed explicitly into
// every repository, there is no package-level singleton.
func NewPostgresConnection(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// WithTimeout races fn against a timer and returns whichever settles first.
// If the timer wins the caller gets a Timeout error; the store call keeps
// running in the background and its eventual result is discarded, not
// cancelled.
func WithTimeout[T any](ctx context.Context, d time.Duration, message string, fn func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	// Buffered so the late loser can deliver and exit.
	ch := make(chan outcome, 1)
	go func() {
		v, err := fn()
		ch <- outcome{value: v, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case out := <-ch:
		return out.value, out.err
	case <-timer.C:
		var zero T
		return zero, apperror.Timeout(message)
	case <-ctx.Done():
		var zero T
		return zero, apperror.Internal(ctx.Err())
	}
}
