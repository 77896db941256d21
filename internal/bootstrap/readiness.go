package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"petify/internal/platform/logger"
)

// WaitReady reintenta op con delay fijo hasta attempts veces.
// Devuelve el último error si nunca tuvo éxito.
func WaitReady(ctx context.Context, attempts int, delay time.Duration, op func(ctx context.Context) error, log logger.Logger) error {
	if attempts <= 0 {
		return errors.New("readiness: attempts must be positive")
	}
	if log == nil {
		log = logger.Nop()
	}

	try := 0
	_, err := backoff.Retry(ctx,
		func() (struct{}, error) {
			try++
			return struct{}{}, op(ctx)
		},
		backoff.WithBackOff(backoff.NewConstantBackOff(delay)),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn("database not ready, retrying", map[string]any{
				"attempt": try,
				"of":      attempts,
				"next_in": next.String(),
				"error":   err,
			})
		}),
	)
	if err != nil {
		return fmt.Errorf("readiness: gave up after %d attempts: %w", try, err)
	}
	return nil
}
