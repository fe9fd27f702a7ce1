package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/minivoetbal/internal/domain/access"
	"github.com/riskibarqy/minivoetbal/internal/domain/match"
	"github.com/riskibarqy/minivoetbal/internal/domain/player"
	"github.com/riskibarqy/minivoetbal/internal/domain/suspension"
	"github.com/riskibarqy/minivoetbal/internal/platform/clock"
	"github.com/riskibarqy/minivoetbal/internal/platform/id"
	"github.com/riskibarqy/minivoetbal/internal/platform/logging"
)

const defaultSuspensionWorkers = 4

type SuspensionInput struct {
	PlayerID string
	Reason   string
	Matches  int
}

// ServeResult summarizes one pass of ServePlayedMatches.
type ServeResult struct {
	Teams   int
	Updated int
	Served  int
}

type SuspensionService struct {
	suspensionRepo suspension.Repository
	playerRepo     player.Repository
	matchRepo      match.Repository
	clock          clock.Clock
	location       *time.Location
	ids            id.Generator
	workers        int
	logger         *logging.Logger
}

func NewSuspensionService(
	suspensionRepo suspension.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	clk clock.Clock,
	ids id.Generator,
	workers int,
	logger *logging.Logger,
) *SuspensionService {
	if clk == nil {
		clk = clock.NewLocal(time.Local)
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if workers <= 0 {
		workers = defaultSuspensionWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SuspensionService{
		suspensionRepo: suspensionRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		clock:          clk,
		location:       clk.Now().Location(),
		ids:            ids,
		workers:        workers,
		logger:         logger,
	}
}

// List returns suspensions ordered by creation; activeOnly drops served ones.
func (s *SuspensionService) List(ctx context.Context, activeOnly bool) ([]suspension.Suspension, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionService.List")
	defer span.End()

	items, err := s.suspensionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list suspensions: %w", err)
	}
	if !activeOnly {
		return items, nil
	}

	out := make([]suspension.Suspension, 0, len(items))
	for _, item := range items {
		if item.Active() {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *SuspensionService) Create(ctx context.Context, input SuspensionInput) (suspension.Suspension, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionService.Create")
	defer span.End()

	playerID := strings.TrimSpace(input.PlayerID)
	if playerID == "" {
		return suspension.Suspension{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return suspension.Suspension{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return suspension.Suspension{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return s.create(ctx, suspension.Suspension{
		PlayerID: p.ID,
		TeamID:   p.TeamID,
		Reason:   strings.TrimSpace(input.Reason),
		Matches:  input.Matches,
	})
}

func (s *SuspensionService) Delete(ctx context.Context, suspensionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionService.Delete")
	defer span.End()

	suspensionID = strings.TrimSpace(suspensionID)
	if suspensionID == "" {
		return fmt.Errorf("%w: suspension id is required", ErrInvalidInput)
	}
	_, exists, err := s.suspensionRepo.GetByID(ctx, suspensionID)
	if err != nil {
		return fmt.Errorf("get suspension by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: suspension=%s", ErrNotFound, suspensionID)
	}
	if err := s.suspensionRepo.Delete(ctx, suspensionID); err != nil {
		return fmt.Errorf("delete suspension: %w", err)
	}
	return nil
}

func (s *SuspensionService) IsSuspended(ctx context.Context, playerID string) (bool, error) {
	items, err := s.suspensionRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("list player suspensions: %w", err)
	}
	for _, item := range items {
		if item.Active() {
			return true, nil
		}
	}
	return false, nil
}

// RecordRedCard adds the automatic ban for a red card. Entering the same
// result twice does not stack bans.
func (s *SuspensionService) RecordRedCard(ctx context.Context, matchID, playerID, teamID string) error {
	items, err := s.suspensionRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("list player suspensions: %w", err)
	}
	for _, item := range items {
		if item.SourceMatchID == matchID {
			return nil
		}
	}

	_, err = s.create(ctx, suspension.Suspension{
		PlayerID:      playerID,
		TeamID:        teamID,
		Reason:        "red card",
		Matches:       suspension.RedCardMatches,
		SourceMatchID: matchID,
	})
	return err
}

// ServePlayedMatches counts played team matches against active
// suspensions. Teams are processed concurrently; reruns change nothing.
func (s *SuspensionService) ServePlayedMatches(ctx context.Context) (ServeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionService.ServePlayedMatches")
	defer span.End()

	items, err := s.suspensionRepo.List(ctx)
	if err != nil {
		return ServeResult{}, fmt.Errorf("list suspensions: %w", err)
	}

	byTeam := make(map[string][]suspension.Suspension)
	for _, item := range items {
		if item.Active() {
			byTeam[item.TeamID] = append(byTeam[item.TeamID], item)
		}
	}
	result := ServeResult{Teams: len(byTeam)}
	if len(byTeam) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return ServeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		updated  atomic.Int32
		served   atomic.Int32
		workers  sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	for teamID, pending := range byTeam {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			u, n, err := s.serveTeam(ctx, teamID, pending)
			updated.Add(int32(u))
			served.Add(int32(n))
			if err != nil {
				s.logger.WarnContext(ctx, "serve team suspensions failed", "team_id", teamID, "error", err)
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
			}
		}); err != nil {
			workers.Done()
			return ServeResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	result.Updated = int(updated.Load())
	result.Served = int(served.Load())
	if firstErr != nil {
		return result, firstErr
	}
	return result, nil
}

func (s *SuspensionService) serveTeam(ctx context.Context, teamID string, pending []suspension.Suspension) (int, int, error) {
	played, err := s.matchRepo.List(ctx, match.Filter{TeamID: teamID, Status: match.StatusPlayed})
	if err != nil {
		return 0, 0, fmt.Errorf("list played matches for team %s: %w", teamID, err)
	}
	sort.SliceStable(played, func(i, j int) bool { return played[i].KickoffKey() < played[j].KickoffKey() })

	updated, served := 0, 0
	for _, item := range pending {
		changed := false
		for _, m := range played {
			kickoff, err := access.ParseKickoff(m.Date, m.Time, s.location)
			if err != nil || !kickoff.After(item.CreatedAt) {
				continue
			}
			if item.Serve(m.ID) {
				changed = true
				served++
			}
		}
		if !changed {
			continue
		}
		if err := s.suspensionRepo.Update(ctx, item); err != nil {
			return updated, served, fmt.Errorf("update suspension %s: %w", item.ID, err)
		}
		updated++
	}
	return updated, served, nil
}

func (s *SuspensionService) create(ctx context.Context, item suspension.Suspension) (suspension.Suspension, error) {
	suspensionID, err := s.ids.NewID()
	if err != nil {
		return suspension.Suspension{}, fmt.Errorf("generate suspension id: %w", err)
	}
	item.ID = suspensionID
	item.CreatedAt = s.clock.Now()
	if item.Reason == "" {
		item.Reason = "disciplinary"
	}
	if err := item.Validate(); err != nil {
		return suspension.Suspension{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.suspensionRepo.Create(ctx, item); err != nil {
		return suspension.Suspension{}, fmt.Errorf("create suspension: %w", err)
	}

	s.logger.InfoContext(ctx, "suspension recorded",
		"suspension_id", item.ID,
		"player_id", item.PlayerID,
		"matches", item.Matches,
		"source_match_id", item.SourceMatchID,
	)
	return item, nil
}
