package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/minivoetbal/internal/observability"
	"github.com/riskibarqy/minivoetbal/internal/platform/logging"
	"github.com/riskibarqy/minivoetbal/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// JobRunner triggers background jobs on demand.
type JobRunner interface {
	Names() []string
	RunNow(ctx context.Context, name string) error
}

type Handler struct {
	matchService      *usecase.MatchService
	teamService       *usecase.TeamService
	playerService     *usecase.PlayerService
	suspensionService *usecase.SuspensionService
	standingService   *usecase.StandingService
	bracketService    *usecase.BracketService
	financeService    *usecase.FinanceService
	authService       *usecase.AuthService
	overviewService   *usecase.OverviewService
	jobs              JobRunner
	metrics           *observability.Metrics
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	suspensionService *usecase.SuspensionService,
	standingService *usecase.StandingService,
	bracketService *usecase.BracketService,
	financeService *usecase.FinanceService,
	authService *usecase.AuthService,
	overviewService *usecase.OverviewService,
	jobs JobRunner,
	metrics *observability.Metrics,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:      matchService,
		teamService:       teamService,
		playerService:     playerService,
		suspensionService: suspensionService,
		standingService:   standingService,
		bracketService:    bracketService,
		financeService:    financeService,
		authService:       authService,
		overviewService:   overviewService,
		jobs:              jobs,
		metrics:           metrics,
		logger:            logger.Named("httpapi"),
		validator:         validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body strictly and validates it.
func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func pathID(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
