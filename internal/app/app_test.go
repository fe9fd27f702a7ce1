package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/config"
	"github.com/riskibarqy/minivoetbal/internal/infrastructure/jobs"
	"github.com/riskibarqy/minivoetbal/internal/platform/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:                  config.EnvDev,
		HTTPAddr:                ":0",
		ReadTimeout:             5 * time.Second,
		WriteTimeout:            5 * time.Second,
		Location:                time.UTC,
		StoreDriver:             config.StoreMemory,
		SeedDemoData:            true,
		CacheEnabled:            true,
		CacheTTL:                time.Minute,
		SessionTTL:              time.Hour,
		SessionCacheSize:        16,
		MatchLockLead:           5 * time.Minute,
		JobsEnabled:             true,
		JobSuspensionSchedule:   "*/10 * * * *",
		JobSessionPurgeSchedule: "0 * * * *",
		JobWorkers:              2,
		BootstrapAdminUsername:  "admin",
		BootstrapAdminPassword:  "secret-pass",
		MetricsEnabled:          true,
	}
}

func TestNew_MemoryStore(t *testing.T) {
	built, err := New(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = built.Close() })

	require.NotNil(t, built.Server)
	require.NotNil(t, built.Metrics)
	require.NotNil(t, built.Scheduler)
	require.Equal(t, []string{jobs.SessionPurgeJob, jobs.SuspensionServeJob}, built.Scheduler.Names())

	srv := httptest.NewServer(built.Server.Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/v1/auth/login", "application/json",
		strings.NewReader(`{"username":"admin","password":"secret-pass"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNew_OptionalParts(t *testing.T) {
	cfg := testConfig()
	cfg.JobsEnabled = false
	cfg.MetricsEnabled = false
	cfg.SeedDemoData = false

	built, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	require.Nil(t, built.Scheduler)
	require.Nil(t, built.Metrics)
	require.NoError(t, built.Close())

	rec := httptest.NewRecorder()
	built.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAddr = ""

	_, err := New(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestNew_LogsMatchLockLead(t *testing.T) {
	cfg := testConfig()
	cfg.JobsEnabled = false
	cfg.MatchLockLead = -time.Minute

	core, logs := observer.New(zapcore.InfoLevel)
	built, err := New(context.Background(), cfg, logging.FromZap(zap.New(core)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = built.Close() })

	entries := logs.FilterMessage("match lock lead").All()
	require.Len(t, entries, 1)
	require.Equal(t, time.Duration(0), entries[0].ContextMap()["lead"])
}
