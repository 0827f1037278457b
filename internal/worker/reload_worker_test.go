package worker

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dustin/jearn-categorizer/config"
	"github.com/dustin/jearn-categorizer/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(t *testing.T, interval string, fn ReloadFunc) *ReloadWorker {
	t.Helper()
	w, err := NewReloadWorker(&config.WorkerConfig{ReloadInterval: interval}, "test-worker", fn, logger.Nop())
	require.NoError(t, err)
	return w
}

func TestNewReloadWorker(t *testing.T) {
	w := newTestWorker(t, "5m", func() error { return nil })

	assert.Equal(t, "test-worker", w.name)
	assert.NotNil(t, w.cron)
	assert.NotNil(t, w.reloadFunc)
	assert.Equal(t, 5*time.Minute, w.reloadInterval)
	assert.NotNil(t, w.logger)
}

func TestNewReloadWorker_Defaults(t *testing.T) {
	w, err := NewReloadWorker(nil, "defaults", func() error { return nil }, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, w.reloadInterval)
}

func TestNewReloadWorker_InvalidInterval(t *testing.T) {
	testCases := []string{"abc", "-1m", "0s"}

	for _, interval := range testCases {
		t.Run(interval, func(t *testing.T) {
			_, err := NewReloadWorker(&config.WorkerConfig{ReloadInterval: interval}, "bad", func() error { return nil }, logger.Nop())
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid reload interval")
		})
	}
}

func TestNewReloadWorker_NilFunc(t *testing.T) {
	_, err := NewReloadWorker(nil, "nil-func", nil, logger.Nop())
	assert.Error(t, err)
}

func TestReloadWorker_Start_Stop(t *testing.T) {
	w := newTestWorker(t, "5m", func() error { return nil })

	require.NoError(t, w.Start())
	assert.True(t, w.IsRunning())

	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())
}

func TestReloadWorker_RunsOnSchedule(t *testing.T) {
	var calls int32
	w := newTestWorker(t, "1s", func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	require.NoError(t, w.Start())
	defer w.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) > 0
	}, 5*time.Second, 100*time.Millisecond)
}

func TestReloadWorker_RecordsLastError(t *testing.T) {
	w := newTestWorker(t, "5m", func() error { return errors.New("artifact missing") })

	w.runOnce()

	lastRun, lastErr := w.LastRun()
	assert.False(t, lastRun.IsZero())
	assert.EqualError(t, lastErr, "artifact missing")
}

func TestReloadWorker_DurationToCronExpression(t *testing.T) {
	w := newTestWorker(t, "5m", func() error { return nil })

	testCases := []struct {
		duration time.Duration
		expected string
	}{
		{5 * time.Minute, "*/5 * * * *"},
		{30 * time.Minute, "*/30 * * * *"},
		{1 * time.Hour, "0 */1 * * *"},
		{2 * time.Hour, "0 */2 * * *"},
		{10 * time.Second, "@every 10s"},
		{90 * time.Minute, "*/5 * * * *"}, // fallback
	}

	for _, tc := range testCases {
		t.Run(tc.duration.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, w.durationToCronExpression(tc.duration))
		})
	}
}
