package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/minivoetbal/internal/infrastructure/jobs"
	"github.com/riskibarqy/minivoetbal/internal/usecase"
)

type jobRunDTO struct {
	Job    string `json:"job"`
	Status string `json:"status"`
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListJobs")
	defer span.End()

	if h.jobs == nil {
		writeSuccess(ctx, w, http.StatusOK, []string{})
		return
	}
	writeSuccess(ctx, w, http.StatusOK, h.jobs.Names())
}

// RunJob runs a registered background job synchronously.
func (h *Handler) RunJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunJob")
	defer span.End()

	if h.jobs == nil {
		writeError(ctx, w, fmt.Errorf("%w: job scheduler is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	name := pathID(r, "job")
	if err := h.jobs.RunNow(ctx, name); err != nil {
		if errors.Is(err, jobs.ErrUnknownJob) {
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrNotFound, err))
			return
		}
		h.logger.ErrorContext(ctx, "run job failed", "job", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, jobRunDTO{Job: name, Status: "completed"})
}
