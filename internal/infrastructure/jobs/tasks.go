package jobs

import (
	"context"

	"github.com/riskibarqy/minivoetbal/internal/platform/logging"
	"github.com/riskibarqy/minivoetbal/internal/usecase"
)

const (
	SuspensionServeJob = "suspension-serve"
	SessionPurgeJob    = "session-purge"
)

type suspensionServer interface {
	ServePlayedMatches(ctx context.Context) (usecase.ServeResult, error)
}

type sessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int, error)
}

// NewSuspensionServeTask counts played matches against active suspensions.
func NewSuspensionServeTask(schedule string, svc suspensionServer, logger *logging.Logger) Task {
	if logger == nil {
		logger = logging.Default()
	}
	return Task{
		Name:     SuspensionServeJob,
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			result, err := svc.ServePlayedMatches(ctx)
			if err != nil {
				return err
			}
			if result.Served > 0 {
				logger.InfoContext(ctx, "suspensions served",
					"teams", result.Teams,
					"updated", result.Updated,
					"served", result.Served,
				)
			}
			return nil
		},
	}
}

func NewSessionPurgeTask(schedule string, svc sessionPurger, logger *logging.Logger) Task {
	if logger == nil {
		logger = logging.Default()
	}
	return Task{
		Name:     SessionPurgeJob,
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			removed, err := svc.PurgeExpiredSessions(ctx)
			if err != nil {
				return err
			}
			if removed > 0 {
				logger.InfoContext(ctx, "expired sessions purged", "removed", removed)
			}
			return nil
		},
	}
}
