// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/logger"
)

const (
	defaultSweepInterval = time.Hour
	defaultSweepTimeout  = time.Minute
)

// tokenSweepWorker periodically removes expired refresh tokens.
// A failed or panicking run is logged and the next tick proceeds normally.
type tokenSweepWorker struct {
	sweeper  RefreshTokenSweeper
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTokenSweepWorker creates a worker that calls
// sweeper.SweepExpiredRefreshTokens every interval, each run bounded by
// timeout. Non-positive values fall back to one hour and one minute.
// The worker is idle until Start is called.
func NewTokenSweepWorker(sweeper RefreshTokenSweeper, interval, timeout time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	if timeout <= 0 {
		timeout = defaultSweepTimeout
	}

	return &tokenSweepWorker{
		sweeper:  sweeper,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Start stops any previously running loop, then launches a goroutine that
// sweeps every interval until ctx is cancelled or Stop is called.
func (w *tokenSweepWorker) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	w.logger.Info().Dur("interval", w.interval).Msg("refresh token sweeper started")

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				_, _ = w.runOnce(loopCtx)
			}
		}
	}()
}

// Stop cancels the loop and blocks until it has exited. Safe to call when
// the worker is not running.
func (w *tokenSweepWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

// runOnce performs a single sweep and converts a panic into an error.
func (w *tokenSweepWorker) runOnce(ctx context.Context) (removed int64, err error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			logger.CapturePanic(ctx, rec, debug.Stack())
			err = fmt.Errorf("refresh token sweep panicked: %v", rec)
			w.logger.Error().Err(err).Msg("refresh token sweep failed")
		}
	}()

	removed, err = w.sweeper.SweepExpiredRefreshTokens(ctx)
	if err != nil {
		w.logger.Err(err).Msg("refresh token sweep failed")
		return 0, err
	}

	w.logger.Info().Int64("removed", removed).Msg("expired refresh tokens swept")
	return removed, nil
}
