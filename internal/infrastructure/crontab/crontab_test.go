package crontab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igi-pe/report-api/internal/config"
)

type mockPurger struct {
	PurgeOlderThanFunc func(ctx context.Context, retention time.Duration) (int, error)
}

func (m *mockPurger) PurgeOlderThan(ctx context.Context, retention time.Duration) (int, error) {
	if m.PurgeOlderThanFunc != nil {
		return m.PurgeOlderThanFunc(ctx, retention)
	}
	return 0, nil
}

func TestRunDisabled(t *testing.T) {
	called := false
	purger := &mockPurger{PurgeOlderThanFunc: func(context.Context, time.Duration) (int, error) {
		called = true
		return 0, nil
	}}
	c := NewCrontab(&config.Config{MiniReportCleanupSchedule: "0 3 * * *"}, purger, zerolog.Nop())

	require.NoError(t, c.Run(context.Background()))
	assert.False(t, called)
}

func TestRunPurgesOnStart(t *testing.T) {
	var got time.Duration
	purger := &mockPurger{PurgeOlderThanFunc: func(_ context.Context, retention time.Duration) (int, error) {
		got = retention
		return 3, nil
	}}
	cfg := &config.Config{MiniReportRetention: 48 * time.Hour, MiniReportCleanupSchedule: "0 3 * * *"}
	c := NewCrontab(cfg, purger, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	removed := make(chan int, 1)
	c.onPurged = func(n int) {
		removed <- n
		cancel()
	}

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case n := <-removed:
		assert.Equal(t, 3, n)
	case <-time.After(5 * time.Second):
		t.Fatal("purge did not run")
	}
	require.NoError(t, <-done)
	assert.Equal(t, 48*time.Hour, got)
}

func TestRunPurgeErrorKeepsRunning(t *testing.T) {
	purger := &mockPurger{PurgeOlderThanFunc: func(context.Context, time.Duration) (int, error) {
		return 0, errors.New("disk gone")
	}}
	cfg := &config.Config{MiniReportRetention: time.Hour, MiniReportCleanupSchedule: "0 3 * * *"}
	c := NewCrontab(cfg, purger, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, c.Run(ctx))
}

func TestRunRejectsBadSchedule(t *testing.T) {
	cfg := &config.Config{MiniReportRetention: time.Hour, MiniReportCleanupSchedule: "every day"}
	c := NewCrontab(cfg, &mockPurger{}, zerolog.Nop())

	assert.Error(t, c.Run(context.Background()))
}
