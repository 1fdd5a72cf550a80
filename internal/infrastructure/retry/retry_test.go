package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("connection reset")

func recordingPolicy(waits *[]time.Duration) Policy {
	p := Default()
	p.Sleep = func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return ctx.Err()
	}
	return p
}

func TestDo(t *testing.T) {
	t.Run("succeeds first time without waiting", func(t *testing.T) {
		var waits []time.Duration
		calls := 0
		err := Do(context.Background(), recordingPolicy(&waits), func(context.Context) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Empty(t, waits)
	})

	t.Run("waits 1s 2s 4s then gives up", func(t *testing.T) {
		var waits []time.Duration
		calls := 0
		err := Do(context.Background(), recordingPolicy(&waits), func(context.Context) error {
			calls++
			return errTransient
		})
		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 4, calls)
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, waits)
	})

	t.Run("recovers on a later attempt", func(t *testing.T) {
		var waits []time.Duration
		calls := 0
		err := Do(context.Background(), recordingPolicy(&waits), func(context.Context) error {
			calls++
			if calls < 3 {
				return errTransient
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Len(t, waits, 2)
	})

	t.Run("permanent errors are returned unwrapped", func(t *testing.T) {
		var waits []time.Duration
		bad := errors.New("bad request")
		calls := 0
		err := Do(context.Background(), recordingPolicy(&waits), func(context.Context) error {
			calls++
			return Permanent(bad)
		})
		assert.Equal(t, bad, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("non retryable errors stop immediately", func(t *testing.T) {
		var waits []time.Duration
		p := recordingPolicy(&waits)
		p.Retryable = func(err error) bool { return errors.Is(err, errTransient) }
		other := errors.New("not found")
		calls := 0
		err := Do(context.Background(), p, func(context.Context) error {
			calls++
			return other
		})
		assert.Equal(t, other, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context is not retried", func(t *testing.T) {
		var waits []time.Duration
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := Do(ctx, recordingPolicy(&waits), func(context.Context) error {
			calls++
			cancel()
			return errTransient
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.Empty(t, waits)
	})
}

func TestDo_DelayIsCapped(t *testing.T) {
	var waits []time.Duration
	p := recordingPolicy(&waits)
	p.MaxRetries = 5
	err := Do(context.Background(), p, func(context.Context) error { return errTransient })
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, []time.Duration{
		time.Second, 2 * time.Second, 4 * time.Second, 4 * time.Second, 4 * time.Second,
	}, waits)
}

func TestDo_NoRetries(t *testing.T) {
	var waits []time.Duration
	p := recordingPolicy(&waits)
	p.MaxRetries = 0
	calls := 0
	err := Do(context.Background(), p, func(context.Context) error {
		calls++
		return errTransient
	})
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, calls)
	assert.Empty(t, waits)
}

func TestDo_CancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Default()
	p.Sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}
	calls := 0
	err := Do(ctx, p, func(context.Context) error {
		calls++
		return errTransient
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
