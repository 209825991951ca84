// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// sweepFunc adapts a function to RefreshTokenSweeper.
type sweepFunc func(ctx context.Context) (int64, error)

func (f sweepFunc) SweepExpiredRefreshTokens(ctx context.Context) (int64, error) {
	return f(ctx)
}

func TestNewTokenSweepWorker_Defaults(t *testing.T) {
	w := NewTokenSweepWorker(sweepFunc(nil), 0, -1, logger.Nop()).(*tokenSweepWorker)

	assert.Equal(t, time.Hour, w.interval)
	assert.Equal(t, time.Minute, w.timeout)
}

func TestTokenSweepWorker_RunOnce(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sweeper := mock.NewMockTokenService(ctrl)
		sweeper.EXPECT().SweepExpiredRefreshTokens(gomock.Any()).Return(int64(4), nil)

		w := NewTokenSweepWorker(sweeper, time.Hour, time.Second, logger.Nop()).(*tokenSweepWorker)

		removed, err := w.runOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(4), removed)
	})

	t.Run("error is returned not raised", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sweeper := mock.NewMockTokenService(ctrl)
		boom := errors.New("database is down")
		sweeper.EXPECT().SweepExpiredRefreshTokens(gomock.Any()).Return(int64(0), boom)

		w := NewTokenSweepWorker(sweeper, time.Hour, time.Second, logger.Nop()).(*tokenSweepWorker)

		removed, err := w.runOnce(context.Background())
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, removed)
	})

	t.Run("panic is recovered", func(t *testing.T) {
		w := NewTokenSweepWorker(sweepFunc(func(context.Context) (int64, error) {
			panic("nil map")
		}), time.Hour, time.Second, logger.Nop()).(*tokenSweepWorker)

		var err error
		assert.NotPanics(t, func() { _, err = w.runOnce(context.Background()) })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nil map")
	})

	t.Run("run is bounded by timeout", func(t *testing.T) {
		w := NewTokenSweepWorker(sweepFunc(func(ctx context.Context) (int64, error) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 40*time.Millisecond)
			return 0, nil
		}), time.Hour, 50*time.Millisecond, logger.Nop()).(*tokenSweepWorker)

		_, err := w.runOnce(context.Background())
		require.NoError(t, err)
	})
}

// Failures on one tick never stop the loop.
func TestTokenSweepWorker_KeepsTickingAfterFailures(t *testing.T) {
	var calls atomic.Int32
	w := NewTokenSweepWorker(sweepFunc(func(context.Context) (int64, error) {
		n := calls.Add(1)
		switch n {
		case 1:
			return 0, errors.New("first run fails")
		case 2:
			panic("second run panics")
		}
		return 1, nil
	}), 5*time.Millisecond, time.Second, logger.Nop())

	w.Start(context.Background())
	defer w.Stop()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestTokenSweepWorker_StopHaltsLoop(t *testing.T) {
	var calls atomic.Int32
	w := NewTokenSweepWorker(sweepFunc(func(context.Context) (int64, error) {
		calls.Add(1)
		return 0, nil
	}), 5*time.Millisecond, time.Second, logger.Nop())

	w.Start(context.Background())
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 5*time.Millisecond)

	w.Stop()
	stopped := calls.Load()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())

	// second Stop is a no-op
	assert.NotPanics(t, w.Stop)
}

func TestTokenSweepWorker_ContextCancelEndsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewTokenSweepWorker(sweepFunc(func(context.Context) (int64, error) {
		return 0, nil
	}), time.Hour, time.Second, logger.Nop())

	w.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not exit after context cancellation")
	}
}
