package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterBlocksAfterMaxFailures(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		blocked, err := l.Blocked(ctx, "T1")
		require.NoError(t, err)
		assert.False(t, blocked, "attempt %d", i)
		require.NoError(t, l.Fail(ctx, "T1"))
	}

	blocked, err := l.Blocked(ctx, "T1")
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = l.Blocked(ctx, "T2")
	require.NoError(t, err)
	assert.False(t, blocked, "other keys are independent")
}

func TestMemoryLimiterReset(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(1, time.Hour)
	require.NoError(t, l.Fail(ctx, "T1"))

	blocked, _ := l.Blocked(ctx, "T1")
	assert.True(t, blocked)

	require.NoError(t, l.Reset(ctx, "T1"))
	blocked, _ = l.Blocked(ctx, "T1")
	assert.False(t, blocked)
}

func TestMemoryLimiterRefills(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(1, 20*time.Millisecond)
	require.NoError(t, l.Fail(ctx, "T1"))

	assert.Eventually(t, func() bool {
		blocked, _ := l.Blocked(ctx, "T1")
		return !blocked
	}, time.Second, 5*time.Millisecond)
}
