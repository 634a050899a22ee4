// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// pruneTimeout bounds one event log prune.
const pruneTimeout = 30 * time.Second

// EventPruner deletes event log entries older than a cutoff.
type EventPruner interface {
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Scheduler handles scheduled maintenance such as event log retention.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new scheduler instance.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
		now:    time.Now,
	}
}

// AddEventPrune schedules deletion of events older than retention. schedule is a
// standard cron expression or descriptor such as "@daily".
func (s *Scheduler) AddEventPrune(schedule string, events EventPruner, retention time.Duration) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.PruneEvents(events, retention)
	})
	return err
}

// PruneEvents deletes events older than retention once and returns the number removed.
func (s *Scheduler) PruneEvents(events EventPruner, retention time.Duration) int64 {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	cutoff := s.now().Add(-retention)
	n, err := events.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("failed to prune event log", "category", "storage", "error", err)
		return 0
	}
	if n > 0 {
		s.logger.Info("pruned event log", "deleted", n, "cutoff", cutoff.Format(time.RFC3339))
	}
	return n
}

// Start begins running the scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
