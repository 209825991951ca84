// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds every background worker of the server process.
func NewWorkers(sweeper RefreshTokenSweeper, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewTokenSweepWorker(sweeper, cfg.SweepInterval, cfg.SweepTimeout, logger),
		},
	}
}

// Start launches all workers in registration order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops all workers in reverse registration order and waits for each
// to exit.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
