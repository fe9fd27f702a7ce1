package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/domain/access"
	"github.com/riskibarqy/minivoetbal/internal/domain/match"
	"github.com/riskibarqy/minivoetbal/internal/domain/standing"
	"github.com/riskibarqy/minivoetbal/internal/domain/suspension"
	"github.com/riskibarqy/minivoetbal/internal/domain/team"
	"github.com/riskibarqy/minivoetbal/internal/platform/clock"
	"github.com/sourcegraph/conc/pool"
)

const overviewListSize = 5

// Overview is the public landing payload.
type Overview struct {
	TeamCount         int
	Upcoming          []match.Match
	LatestResults     []match.Match
	TopStandings      []standing.Row
	ActiveSuspensions int
}

type OverviewService struct {
	teamRepo       team.Repository
	matchRepo      match.Repository
	suspensionRepo suspension.Repository
	standings      *StandingService
	clock          clock.Clock
}

func NewOverviewService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	suspensionRepo suspension.Repository,
	standings *StandingService,
	clk clock.Clock,
) *OverviewService {
	if clk == nil {
		clk = clock.NewLocal(time.Local)
	}
	return &OverviewService{
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		suspensionRepo: suspensionRepo,
		standings:      standings,
		clock:          clk,
	}
}

func (s *OverviewService) Get(ctx context.Context) (Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OverviewService.Get")
	defer span.End()

	now := s.clock.Now()
	var out Overview

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		teams, err := s.teamRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		out.TeamCount = len(teams)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		scheduled, err := s.matchRepo.List(ctx, match.Filter{Status: match.StatusScheduled})
		if err != nil {
			return fmt.Errorf("list scheduled matches: %w", err)
		}
		out.Upcoming = upcomingMatches(scheduled, now)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		played, err := s.matchRepo.List(ctx, match.Filter{Status: match.StatusPlayed})
		if err != nil {
			return fmt.Errorf("list played matches: %w", err)
		}
		out.LatestResults = latestResults(played)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		rows, err := s.standings.Table(ctx)
		if err != nil {
			return err
		}
		if len(rows) > overviewListSize {
			rows = rows[:overviewListSize]
		}
		out.TopStandings = rows
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.suspensionRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list suspensions: %w", err)
		}
		for _, item := range items {
			if item.Active() {
				out.ActiveSuspensions++
			}
		}
		return nil
	})

	if err := p.Wait(); err != nil {
		return Overview{}, err
	}
	return out, nil
}

// upcomingMatches keeps matches whose kickoff has not passed yet.
func upcomingMatches(items []match.Match, now time.Time) []match.Match {
	out := make([]match.Match, 0, overviewListSize)
	for _, m := range items {
		kickoff, err := access.ParseKickoff(m.Date, m.Time, now.Location())
		if err != nil || kickoff.Before(now) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].KickoffKey() < out[j].KickoffKey() })
	if len(out) > overviewListSize {
		out = out[:overviewListSize]
	}
	return out
}

func latestResults(items []match.Match) []match.Match {
	out := append([]match.Match(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].KickoffKey() > out[j].KickoffKey() })
	if len(out) > overviewListSize {
		out = out[:overviewListSize]
	}
	return out
}
