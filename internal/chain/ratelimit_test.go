package chain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottleAllowsBurst(t *testing.T) {
	t.Parallel()

	throttle := NewThrottle(1, 3)

	assert.True(t, throttle.Allow())
	assert.True(t, throttle.Allow())
	assert.True(t, throttle.Allow())
	assert.False(t, throttle.Allow())
}

func TestThrottleWaitWithinBurst(t *testing.T) {
	t.Parallel()

	throttle := NewThrottle(100, 5)
	require.NoError(t, throttle.Wait(context.Background()))
}

func TestThrottleWaitCanceledContext(t *testing.T) {
	t.Parallel()

	throttle := NewThrottle(0.001, 1)
	require.NoError(t, throttle.Wait(context.Background())) // consume the burst

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, throttle.Wait(ctx))
}

func TestDefaultThrottle(t *testing.T) {
	t.Parallel()

	throttle := DefaultThrottle()
	assert.True(t, throttle.Allow())
}
