// Package jobs provides scheduled background tasks, implemented with
// github.com/robfig/cron/v3. The only job today is the hire expiry sweep;
// JobManager exists so main wires one start/stop pair regardless of how many
// jobs are added later.
package jobs

import (
	"fmt"
	"log/slog"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	hireExpiryJob *HireExpiryJob
}

// NewJobManager creates a manager with all required jobs wired.
func NewJobManager(
	expiredHires queries.GetExpiredHiresQueryHandler,
	containerStatus queries.GetContainerStatusQueryHandler,
	publisher ports.TrackingPublisher,
	hireExpirySchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		hireExpiryJob: NewHireExpiryJob(expiredHires, containerStatus, publisher, hireExpirySchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.hireExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start hire expiry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.hireExpiryJob.Stop()
}
