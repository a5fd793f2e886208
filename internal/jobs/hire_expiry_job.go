package jobs

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// HireExpiryJob sweeps hired-in containers whose hire period has ended and
// publishes a return-due notification for each. The sweep is read-only: it
// never mutates container state, so re-running it is harmless.
type HireExpiryJob struct {
	expiredHires    queries.GetExpiredHiresQueryHandler
	containerStatus queries.GetContainerStatusQueryHandler
	publisher       ports.TrackingPublisher
	cron            *cron.Cron
	schedule        string
	logger          *slog.Logger
}

// NewHireExpiryJob creates the sweep with the given cron schedule
// (six-field expression, seconds first).
func NewHireExpiryJob(
	expiredHires queries.GetExpiredHiresQueryHandler,
	containerStatus queries.GetContainerStatusQueryHandler,
	publisher ports.TrackingPublisher,
	schedule string,
	logger *slog.Logger,
) *HireExpiryJob {
	return &HireExpiryJob{
		expiredHires:    expiredHires,
		containerStatus: containerStatus,
		publisher:       publisher,
		cron:            cron.New(cron.WithSeconds()),
		schedule:        schedule,
		logger:          logger.With("component", "hire_expiry_job"),
	}
}

// Start schedules the sweep.
func (j *HireExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "hire expiry sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "hire expiry job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep.
func (j *HireExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "hire expiry job stopped")
}

func (j *HireExpiryJob) run(ctx context.Context) error {
	now := time.Now()

	expired, err := j.expiredHires.Handle(ctx, queries.NewGetExpiredHiresQuery(now))
	if err != nil {
		return err
	}

	for _, hire := range expired {
		event := ports.ContainerReturnDueEvent{
			ContainerNumber: hire.ContainerNumber,
			Hirer:           hire.Hirer,
			HireEndDate:     hire.HireEndDate.Format(time.DateOnly),
			DetectedAt:      now,
		}

		// Derived status is informational on the event; a lookup failure
		// downgrades the payload rather than dropping the notification.
		query, queryErr := queries.NewGetContainerStatusQuery(hire.ContainerNumber)
		if queryErr == nil {
			status, statusErr := j.containerStatus.Handle(ctx, query)
			if statusErr != nil {
				j.logger.WarnContext(ctx, "derived status lookup failed",
					"container_number", hire.ContainerNumber, "error", statusErr)
			} else {
				event.DerivedStatus = status.DerivedStatus
			}
		}

		if err = j.publisher.PublishContainerReturnDue(ctx, event); err != nil {
			j.logger.WarnContext(ctx, "return-due notification failed",
				"container_number", hire.ContainerNumber, "error", err)
		}
	}

	return nil
}
