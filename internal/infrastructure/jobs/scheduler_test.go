package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/platform/logging"
	"github.com/riskibarqy/minivoetbal/internal/platform/resilience"
	"github.com/riskibarqy/minivoetbal/internal/usecase"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSuspensionServer struct {
	calls  int
	result usecase.ServeResult
	err    error
}

func (f *fakeSuspensionServer) ServePlayedMatches(context.Context) (usecase.ServeResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeSessionPurger struct {
	calls int
}

func (f *fakeSessionPurger) PurgeExpiredSessions(context.Context) (int, error) {
	f.calls++
	return 2, nil
}

func TestScheduler_RegisterValidation(t *testing.T) {
	s := NewScheduler(time.UTC, logging.NewNop())
	noop := func(context.Context) error { return nil }

	if err := s.Register(Task{Name: "", Schedule: "@hourly", Run: noop}); err == nil {
		t.Fatalf("expected error for empty job name")
	}
	if err := s.Register(Task{Name: "broken", Schedule: "not a schedule", Run: noop}); err == nil {
		t.Fatalf("expected error for invalid schedule")
	}
	if err := s.Register(Task{Name: "idle", Schedule: "@hourly"}); err == nil {
		t.Fatalf("expected error for missing run function")
	}
	if err := s.Register(Task{Name: "purge", Schedule: "@hourly", Run: noop}); err != nil {
		t.Fatalf("register job: %v", err)
	}
	if err := s.Register(Task{Name: "purge", Schedule: "@daily", Run: noop}); err == nil {
		t.Fatalf("expected error for duplicate job")
	}

	names := s.Names()
	if len(names) != 1 || names[0] != "purge" {
		t.Fatalf("unexpected job names: %v", names)
	}
}

func TestScheduler_RunNow(t *testing.T) {
	s := NewScheduler(time.UTC, logging.NewNop())
	server := &fakeSuspensionServer{result: usecase.ServeResult{Teams: 1, Updated: 1, Served: 1}}
	purger := &fakeSessionPurger{}

	if err := s.Register(NewSuspensionServeTask("@every 15m", server, logging.NewNop())); err != nil {
		t.Fatalf("register suspension job: %v", err)
	}
	if err := s.Register(NewSessionPurgeTask("@hourly", purger, nil)); err != nil {
		t.Fatalf("register purge job: %v", err)
	}

	ctx := context.Background()
	if err := s.RunNow(ctx, SuspensionServeJob); err != nil {
		t.Fatalf("run suspension job: %v", err)
	}
	if err := s.RunNow(ctx, SessionPurgeJob); err != nil {
		t.Fatalf("run purge job: %v", err)
	}
	if server.calls != 1 || purger.calls != 1 {
		t.Fatalf("expected one call each, got serve=%d purge=%d", server.calls, purger.calls)
	}

	server.err = errors.New("db down")
	if err := s.RunNow(ctx, SuspensionServeJob); err == nil {
		t.Fatalf("expected job error to surface")
	}

	if err := s.RunNow(ctx, "missing"); !errors.Is(err, ErrUnknownJob) {
		t.Fatalf("expected ErrUnknownJob, got %v", err)
	}
}

func TestScheduler_RunNowAppliesTimeout(t *testing.T) {
	s := NewScheduler(time.UTC, logging.NewNop())
	err := s.Register(Task{
		Name:     "slow",
		Schedule: "@hourly",
		Timeout:  10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})
	if err != nil {
		t.Fatalf("register job: %v", err)
	}

	if err := s.RunNow(context.Background(), "slow"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(time.UTC, logging.NewNop())
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop scheduler: %v", err)
	}
}

func TestScheduler_ObserveReportsOutcome(t *testing.T) {
	s := NewScheduler(time.UTC, logging.NewNop())
	outcomes := map[string]error{}
	s.Observe(func(job string, err error) {
		outcomes[job] = err
	})

	failure := errors.New("boom")
	if err := s.Register(Task{Name: "flaky", Schedule: "@hourly", Run: func(context.Context) error { return failure }}); err != nil {
		t.Fatalf("register job: %v", err)
	}

	_ = s.RunNow(context.Background(), "flaky")

	got, ok := outcomes["flaky"]
	if !ok {
		t.Fatalf("expected observer to be called")
	}
	if !errors.Is(got, failure) {
		t.Fatalf("expected observed error %v, got %v", failure, got)
	}
}

func TestScheduler_BreakerSkipsScheduledRuns(t *testing.T) {
	s := NewScheduler(time.UTC, logging.NewNop())
	s.UseCircuitBreaker(resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Hour,
		HalfOpenMaxReq:   1,
	})

	calls := 0
	task := Task{Name: "flaky", Schedule: "@hourly", Run: func(context.Context) error {
		calls++
		return errors.New("db down")
	}}
	if err := s.Register(task); err != nil {
		t.Fatalf("register job: %v", err)
	}
	task.Timeout = defaultTaskTimeout

	ctx := context.Background()
	_ = s.runScheduled(ctx, task)
	_ = s.runScheduled(ctx, task)
	if err := s.runScheduled(ctx, task); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open breaker, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 runs before the breaker opened, got %d", calls)
	}

	_ = s.RunNow(ctx, "flaky")
	if calls != 3 {
		t.Fatalf("expected manual run to bypass the breaker, got %d calls", calls)
	}
}

func TestScheduler_BreakerDisabled(t *testing.T) {
	s := NewScheduler(time.UTC, logging.NewNop())
	s.UseCircuitBreaker(resilience.CircuitBreakerConfig{Enabled: false})

	calls := 0
	task := Task{Name: "flaky", Schedule: "@hourly", Timeout: time.Second, Run: func(context.Context) error {
		calls++
		return errors.New("db down")
	}}
	if err := s.Register(task); err != nil {
		t.Fatalf("register job: %v", err)
	}

	for i := 0; i < 8; i++ {
		_ = s.runScheduled(context.Background(), task)
	}
	if calls != 8 {
		t.Fatalf("expected every scheduled run to execute, got %d", calls)
	}
}

func TestScheduler_LogsBreakerFailures(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewScheduler(time.UTC, logging.FromZap(zap.New(core)))
	s.UseCircuitBreaker(resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Hour,
		HalfOpenMaxReq:   1,
	})

	task := Task{Name: "flaky", Schedule: "@hourly", Timeout: time.Second, Run: func(context.Context) error {
		return errors.New("db down")
	}}
	if err := s.Register(task); err != nil {
		t.Fatalf("register job: %v", err)
	}

	ctx := context.Background()
	_ = s.runScheduled(ctx, task)
	_ = s.runScheduled(ctx, task)
	_ = s.runScheduled(ctx, task)

	failed := logs.FilterMessage("job failed").All()
	if len(failed) != 2 {
		t.Fatalf("expected 2 failure logs, got %d", len(failed))
	}
	if got := failed[1].ContextMap()["failures"]; got != int64(2) {
		t.Fatalf("expected failures=2 on the second failure, got %v", got)
	}

	skipped := logs.FilterMessage("job skipped").All()
	if len(skipped) != 1 {
		t.Fatalf("expected 1 skipped log, got %d", len(skipped))
	}
	fields := skipped[0].ContextMap()
	if fields["breaker"] != "open" || fields["failures"] != int64(2) {
		t.Fatalf("unexpected skipped log fields: %v", fields)
	}
}
