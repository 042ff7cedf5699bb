package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_RunsTasksUntilStopped(t *testing.T) {
	s := New(zap.NewNop())

	var runs, failures atomic.Int32
	require.NoError(t, s.Add(Task{
		Name:     "prune",
		Interval: 5 * time.Millisecond,
		Run: func(context.Context) error {
			runs.Add(1)
			return nil
		},
	}))
	require.NoError(t, s.Add(Task{
		Name:     "flaky",
		Interval: 5 * time.Millisecond,
		Run: func(context.Context) error {
			failures.Add(1)
			return errors.New("transient")
		},
	}))
	require.NoError(t, s.Add(Task{Name: "disabled", Interval: 0, Run: func(context.Context) error { return nil }}))

	s.Start(t.Context())
	assert.ErrorIs(t, s.Add(Task{Name: "late", Interval: time.Second, Run: func(context.Context) error { return nil }}), ErrSchedulerRunning)

	assert.Eventually(t, func() bool { return runs.Load() >= 2 && failures.Load() >= 2 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	stopped := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestScheduler_RecoversFromPanics(t *testing.T) {
	s := New(nil)
	var runs atomic.Int32
	require.NoError(t, s.Add(Task{
		Name:     "explodes",
		Interval: 5 * time.Millisecond,
		Run: func(context.Context) error {
			runs.Add(1)
			panic("boom")
		},
	}))

	s.Start(t.Context())
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	assert.NoError(t, New(nil).Stop(context.Background()))
}
