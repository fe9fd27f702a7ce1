package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/platform/logging"
	"github.com/riskibarqy/minivoetbal/internal/platform/resilience"
	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultTaskTimeout = 5 * time.Minute

var ErrUnknownJob = errors.New("unknown job")

var tracer = otel.Tracer("minivoetbal/internal/infrastructure/jobs")

// Task is one recurring background job.
type Task struct {
	Name     string
	Schedule string
	Timeout  time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs registered tasks on their cron schedule. Overlapping runs
// of the same task are skipped, and so are scheduled runs of a task whose
// breaker has opened after repeated failures.
type Scheduler struct {
	cron   *cron.Cron
	logger *logging.Logger

	mu         sync.RWMutex
	tasks      map[string]Task
	breakerCfg resilience.CircuitBreakerConfig
	breakers   map[string]*resilience.CircuitBreaker
	observer   func(job string, err error)
}

func NewScheduler(loc *time.Location, logger *logging.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("jobs")

	cronLog := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		logger:     logger,
		tasks:      make(map[string]Task),
		breakerCfg: resilience.DefaultCircuitBreakerConfig(),
		breakers:   make(map[string]*resilience.CircuitBreaker),
	}
}

// UseCircuitBreaker replaces the breaker settings for tasks registered later.
func (s *Scheduler) UseCircuitBreaker(cfg resilience.CircuitBreakerConfig) {
	s.mu.Lock()
	s.breakerCfg = resilience.NormalizeCircuitBreakerConfig(cfg)
	s.mu.Unlock()
}

// Observe installs a hook called after every run with its outcome.
func (s *Scheduler) Observe(fn func(job string, err error)) {
	s.mu.Lock()
	s.observer = fn
	s.mu.Unlock()
}

func (s *Scheduler) Register(task Task) error {
	task.Name = strings.TrimSpace(task.Name)
	if task.Name == "" {
		return fmt.Errorf("job name is required")
	}
	if task.Run == nil {
		return fmt.Errorf("job %s has no run function", task.Name)
	}
	if task.Timeout <= 0 {
		task.Timeout = defaultTaskTimeout
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[task.Name]; exists {
		return fmt.Errorf("job %s is already registered", task.Name)
	}
	if _, err := s.cron.AddFunc(task.Schedule, func() {
		_ = s.runScheduled(context.Background(), task)
	}); err != nil {
		return fmt.Errorf("schedule job %s (%q): %w", task.Name, task.Schedule, err)
	}
	s.tasks[task.Name] = task
	if s.breakerCfg.Enabled {
		s.breakers[task.Name] = resilience.NewCircuitBreaker(
			s.breakerCfg.FailureThreshold,
			s.breakerCfg.OpenTimeout,
			s.breakerCfg.HalfOpenMaxReq,
		)
	}

	s.logger.Info("job registered", "job", task.Name, "schedule", task.Schedule)
	return nil
}

// Names lists registered jobs alphabetically.
func (s *Scheduler) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.tasks))
	for name := range s.tasks {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RunNow executes a registered job synchronously, outside its schedule.
// It ignores an open breaker but its outcome still counts.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.RLock()
	task, ok := s.tasks[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.execute(ctx, task)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs or ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for running jobs: %w", ctx.Err())
	}
}

func (s *Scheduler) runScheduled(ctx context.Context, task Task) error {
	s.mu.RLock()
	breaker := s.breakers[task.Name]
	s.mu.RUnlock()

	if breaker != nil {
		if err := breaker.Allow(); err != nil {
			s.logger.Warn("job skipped", "job", task.Name, "breaker", string(breaker.State()), "failures", breaker.Failures())
			return fmt.Errorf("job %s: %w", task.Name, err)
		}
	}
	return s.execute(ctx, task)
}

func (s *Scheduler) execute(ctx context.Context, task Task) error {
	ctx, cancel := context.WithTimeout(ctx, task.Timeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "jobs."+task.Name)
	defer span.End()
	span.SetAttributes(attribute.String("job.name", task.Name))

	startedAt := time.Now()
	err := task.Run(ctx)
	elapsed := time.Since(startedAt)

	s.mu.RLock()
	observer := s.observer
	breaker := s.breakers[task.Name]
	s.mu.RUnlock()
	if observer != nil {
		observer(task.Name, err)
	}
	failures := 0
	if breaker != nil {
		if err != nil {
			breaker.RecordFailure()
			failures = breaker.Failures()
		} else {
			breaker.RecordSuccess()
		}
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "job failed", "job", task.Name, "duration", elapsed, "failures", failures, "error", err)
		return err
	}

	s.logger.InfoContext(ctx, "job completed", "job", task.Name, "duration", elapsed)
	return nil
}

// cronLogger adapts the zap logger to cron.Logger.
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
