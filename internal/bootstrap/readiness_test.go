package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitReady_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := WaitReady(context.Background(), 5, time.Millisecond, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWaitReady_GivesUp(t *testing.T) {
	boom := errors.New("connection refused")
	calls := 0
	err := WaitReady(context.Background(), 4, time.Millisecond, func(context.Context) error {
		calls++
		return boom
	}, nil)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 4, calls)
}

func TestWaitReady_RejectsZeroAttempts(t *testing.T) {
	err := WaitReady(context.Background(), 0, time.Millisecond, func(context.Context) error { return nil }, nil)
	assert.Error(t, err)
}
