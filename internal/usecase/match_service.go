package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/domain/access"
	"github.com/riskibarqy/minivoetbal/internal/domain/match"
	"github.com/riskibarqy/minivoetbal/internal/domain/player"
	"github.com/riskibarqy/minivoetbal/internal/domain/team"
	"github.com/riskibarqy/minivoetbal/internal/platform/clock"
	"github.com/riskibarqy/minivoetbal/internal/platform/id"
	"github.com/riskibarqy/minivoetbal/internal/platform/logging"
)

const (
	lineupMinPlayers = 1
	lineupMaxPlayers = 12
)

// MatchView pairs a match with the edit decision of the requesting actor.
type MatchView struct {
	Match    match.Match
	Decision access.EditDecision
}

type MatchInput struct {
	Competition string
	Round       int
	BracketSlot int
	Date        string
	Time        string
	Location    string
	HomeTeamID  string
	AwayTeamID  string
	RefereeID   string
	Status      string
	HomeScore   *int
	AwayScore   *int
}

type SubmitLineupInput struct {
	MatchID   string
	TeamID    string
	PlayerIDs []string
}

type SubmitResultInput struct {
	MatchID   string
	HomeScore int
	AwayScore int
	Events    []match.Event
}

// suspensionTracker is the part of SuspensionService matches depend on.
type suspensionTracker interface {
	IsSuspended(ctx context.Context, playerID string) (bool, error)
	RecordRedCard(ctx context.Context, matchID, playerID, teamID string) error
}

type MatchService struct {
	matchRepo   match.Repository
	teamRepo    team.Repository
	playerRepo  player.Repository
	suspensions suspensionTracker
	evaluator   access.Evaluator
	clock       clock.Clock
	ids         id.Generator
	logger      *logging.Logger
}

func NewMatchService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	suspensions suspensionTracker,
	evaluator access.Evaluator,
	clk clock.Clock,
	ids id.Generator,
	logger *logging.Logger,
) *MatchService {
	if clk == nil {
		clk = clock.NewLocal(time.Local)
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo:   matchRepo,
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		suspensions: suspensions,
		evaluator:   evaluator,
		clock:       clk,
		ids:         ids,
		logger:      logger,
	}
}

// List returns matches with decisions evaluated against a single instant.
func (s *MatchService) List(ctx context.Context, filter match.Filter, actor access.Actor) ([]MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	items, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	now := s.clock.Now()
	out := make([]MatchView, 0, len(items))
	for _, item := range items {
		out = append(out, MatchView{
			Match:    item,
			Decision: s.evaluator.Decide(item.Schedule(), item.Participants(), actor, now),
		})
	}

	return out, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string, actor access.Actor) (MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}

	return MatchView{
		Match:    item,
		Decision: s.evaluator.Decide(item.Schedule(), item.Participants(), actor, s.clock.Now()),
	}, nil
}

// Decision evaluates the edit decision without returning the match body.
func (s *MatchService) Decision(ctx context.Context, matchID string, actor access.Actor) (access.EditDecision, error) {
	view, err := s.Get(ctx, matchID, actor)
	if err != nil {
		return access.EditDecision{}, err
	}
	return view.Decision, nil
}

func (s *MatchService) Schedule(ctx context.Context, input MatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Schedule")
	defer span.End()

	matchID, err := s.ids.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	now := s.clock.Now()
	item := match.Match{ID: matchID, CreatedAt: now, UpdatedAt: now}
	if err := s.applyInput(ctx, &item, input); err != nil {
		return match.Match{}, err
	}

	if err := s.matchRepo.Create(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match scheduled",
		"match_id", item.ID,
		"competition", item.Competition,
		"date", item.Date,
		"time", item.Time,
	)
	return item, nil
}

func (s *MatchService) Update(ctx context.Context, matchID string, input MatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update")
	defer span.End()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if err := s.applyInput(ctx, &item, input); err != nil {
		return match.Match{}, err
	}
	item.UpdatedAt = s.clock.Now()

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}
	return item, nil
}

func (s *MatchService) Delete(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete")
	defer span.End()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if err := s.matchRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}

// SetLock toggles the manual lock. Only officials may lock or unlock.
func (s *MatchService) SetLock(ctx context.Context, matchID string, locked bool, actor access.Actor) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SetLock")
	defer span.End()

	if !access.CanOfficiate(actor.Role) {
		return match.Match{}, fmt.Errorf("%w: role %s cannot lock matches", ErrForbidden, actor.Role)
	}

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	now := s.clock.Now()
	item.IsManuallyLocked = locked
	item.UpdatedAt = now
	if locked {
		lockedAt := now
		item.LockedBy = actor.UserID
		item.LockedAt = &lockedAt
	} else {
		item.LockedBy = ""
		item.LockedAt = nil
	}

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match lock: %w", err)
	}

	s.logger.InfoContext(ctx, "match lock changed",
		"match_id", item.ID,
		"locked", locked,
		"actor_id", actor.UserID,
		"actor_role", actor.Role,
	)
	return item, nil
}

// SubmitLineup stores the roster one side brings to the match.
func (s *MatchService) SubmitLineup(ctx context.Context, input SubmitLineupInput, actor access.Actor) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SubmitLineup")
	defer span.End()

	item, err := s.getMatch(ctx, input.MatchID)
	if err != nil {
		return match.Match{}, err
	}
	if item.Status == match.StatusCancelled {
		return match.Match{}, fmt.Errorf("%w: match %s is cancelled", ErrConflict, item.ID)
	}

	decision := s.evaluator.Decide(item.Schedule(), item.Participants(), actor, s.clock.Now())
	if !decision.CanEdit {
		return match.Match{}, s.denied(item, decision, actor)
	}

	teamID := strings.TrimSpace(input.TeamID)
	if actor.Role == access.RolePlayerManager {
		if teamID == "" {
			teamID = actor.TeamID
		}
		if teamID != actor.TeamID {
			return match.Match{}, fmt.Errorf("%w: managers can only submit their own team lineup", ErrForbidden)
		}
	}
	if !item.Involves(teamID) {
		return match.Match{}, fmt.Errorf("%w: team %q does not play match %s", ErrInvalidInput, teamID, item.ID)
	}

	playerIDs, err := normalizeIDs(input.PlayerIDs)
	if err != nil {
		return match.Match{}, err
	}
	if len(playerIDs) < lineupMinPlayers || len(playerIDs) > lineupMaxPlayers {
		return match.Match{}, fmt.Errorf("%w: lineup must contain between %d and %d players", ErrInvalidInput, lineupMinPlayers, lineupMaxPlayers)
	}
	if err := s.validateLineup(ctx, teamID, playerIDs); err != nil {
		return match.Match{}, err
	}

	if teamID == item.HomeTeamID {
		item.HomeLineup = playerIDs
	} else {
		item.AwayLineup = playerIDs
	}
	item.UpdatedAt = s.clock.Now()

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match lineup: %w", err)
	}

	s.logger.InfoContext(ctx, "match lineup submitted",
		"match_id", item.ID,
		"team_id", teamID,
		"players", len(playerIDs),
		"actor_role", actor.Role,
	)
	return item, nil
}

// SubmitResult records the final score and match events. Red cards turn
// into suspensions once the result is stored.
func (s *MatchService) SubmitResult(ctx context.Context, input SubmitResultInput, actor access.Actor) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SubmitResult")
	defer span.End()

	if !access.CanOfficiate(actor.Role) {
		return match.Match{}, fmt.Errorf("%w: role %s cannot enter results", ErrForbidden, actor.Role)
	}

	item, err := s.getMatch(ctx, input.MatchID)
	if err != nil {
		return match.Match{}, err
	}
	if item.Status == match.StatusCancelled {
		return match.Match{}, fmt.Errorf("%w: match %s is cancelled", ErrConflict, item.ID)
	}

	decision := s.evaluator.Decide(item.Schedule(), item.Participants(), actor, s.clock.Now())
	if !decision.CanEdit {
		return match.Match{}, s.denied(item, decision, actor)
	}

	if input.HomeScore < 0 || input.AwayScore < 0 {
		return match.Match{}, fmt.Errorf("%w: scores must be >= 0", ErrInvalidInput)
	}

	events, err := s.validateEvents(ctx, item, input.Events)
	if err != nil {
		return match.Match{}, err
	}

	homeScore, awayScore := input.HomeScore, input.AwayScore
	item.HomeScore = &homeScore
	item.AwayScore = &awayScore
	item.Events = events
	item.Status = match.StatusPlayed
	item.UpdatedAt = s.clock.Now()

	if hasGoalEvents(events) {
		if item.GoalsFor(item.HomeTeamID) != homeScore || item.GoalsFor(item.AwayTeamID) != awayScore {
			return match.Match{}, fmt.Errorf("%w: goal events do not add up to %d-%d", ErrInvalidInput, homeScore, awayScore)
		}
	}

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match result: %w", err)
	}

	if s.suspensions != nil {
		for _, e := range events {
			if e.Type != match.EventRedCard {
				continue
			}
			if err := s.suspensions.RecordRedCard(ctx, item.ID, e.PlayerID, e.TeamID); err != nil {
				return match.Match{}, fmt.Errorf("record red card suspension: %w", err)
			}
		}
	}

	s.logger.InfoContext(ctx, "match result submitted",
		"match_id", item.ID,
		"home_score", homeScore,
		"away_score", awayScore,
		"events", len(events),
		"actor_role", actor.Role,
	)
	return item, nil
}

func (s *MatchService) getMatch(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return item, nil
}

// denied builds the refusal error. A manager of either side who is only
// blocked by a lock gets ErrMatchLocked as well.
func (s *MatchService) denied(item match.Match, decision access.EditDecision, actor access.Actor) error {
	lockedOut := actor.Role == access.RolePlayerManager &&
		access.OwnsMatch(item.HomeTeamID, item.AwayTeamID, actor.TeamID) &&
		(item.IsManuallyLocked || decision.IsAutoLocked)
	if lockedOut {
		return fmt.Errorf("%w: %w: match %s no longer accepts changes", ErrForbidden, ErrMatchLocked, item.ID)
	}
	return fmt.Errorf("%w: actor cannot edit match %s", ErrForbidden, item.ID)
}

func (s *MatchService) applyInput(ctx context.Context, item *match.Match, input MatchInput) error {
	competition, err := match.ParseCompetition(input.Competition)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	status, err := match.ParseStatus(input.Status)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	homeTeamID := strings.TrimSpace(input.HomeTeamID)
	awayTeamID := strings.TrimSpace(input.AwayTeamID)
	for _, teamID := range []string{homeTeamID, awayTeamID} {
		if teamID == "" {
			return fmt.Errorf("%w: home_team_id and away_team_id are required", ErrInvalidInput)
		}
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get team by id: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	// Lineups belong to a pairing; a new opponent invalidates them.
	if item.HomeTeamID != homeTeamID {
		item.HomeLineup = nil
	}
	if item.AwayTeamID != awayTeamID {
		item.AwayLineup = nil
	}

	// Stored zero-padded so date+time strings order chronologically.
	kickoff, err := access.ParseKickoff(input.Date, input.Time, s.clock.Now().Location())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item.Competition = competition
	item.Round = input.Round
	item.BracketSlot = input.BracketSlot
	item.Date = kickoff.Format(access.DateLayout)
	item.Time = kickoff.Format(access.TimeLayout)
	item.Location = strings.TrimSpace(input.Location)
	item.HomeTeamID = homeTeamID
	item.AwayTeamID = awayTeamID
	item.RefereeID = strings.TrimSpace(input.RefereeID)
	item.Status = status
	item.HomeScore = input.HomeScore
	item.AwayScore = input.AwayScore

	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func (s *MatchService) validateLineup(ctx context.Context, teamID string, playerIDs []string) error {
	roster, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("list team players: %w", err)
	}
	byID := make(map[string]player.Player, len(roster))
	for _, p := range roster {
		byID[p.ID] = p
	}

	for _, playerID := range playerIDs {
		p, ok := byID[playerID]
		if !ok {
			return fmt.Errorf("%w: player %s is not registered for team %s", ErrInvalidInput, playerID, teamID)
		}
		if !p.IsActive {
			return fmt.Errorf("%w: player %s is inactive", ErrInvalidInput, playerID)
		}
		if s.suspensions == nil {
			continue
		}
		suspended, err := s.suspensions.IsSuspended(ctx, playerID)
		if err != nil {
			return fmt.Errorf("check player suspension: %w", err)
		}
		if suspended {
			return fmt.Errorf("%w: player %s is suspended", ErrInvalidInput, playerID)
		}
	}

	return nil
}

func (s *MatchService) validateEvents(ctx context.Context, item match.Match, events []match.Event) ([]match.Event, error) {
	rosters := make(map[string]map[string]struct{}, 2)
	for _, teamID := range []string{item.HomeTeamID, item.AwayTeamID} {
		players, err := s.playerRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, fmt.Errorf("list team players: %w", err)
		}
		ids := make(map[string]struct{}, len(players))
		for _, p := range players {
			ids[p.ID] = struct{}{}
		}
		rosters[teamID] = ids
	}

	out := make([]match.Event, 0, len(events))
	for i, e := range events {
		e.PlayerID = strings.TrimSpace(e.PlayerID)
		e.TeamID = strings.TrimSpace(e.TeamID)
		if !e.Type.Valid() {
			return nil, fmt.Errorf("%w: event %d has unknown type %q", ErrInvalidInput, i, e.Type)
		}
		roster, ok := rosters[e.TeamID]
		if !ok {
			return nil, fmt.Errorf("%w: event %d team %q does not play this match", ErrInvalidInput, i, e.TeamID)
		}
		if _, ok := roster[e.PlayerID]; !ok {
			return nil, fmt.Errorf("%w: event %d player %q is not registered for team %s", ErrInvalidInput, i, e.PlayerID, e.TeamID)
		}
		if e.Minute < 0 {
			return nil, fmt.Errorf("%w: event %d minute must be >= 0", ErrInvalidInput, i)
		}
		out = append(out, e)
	}

	slices.SortStableFunc(out, func(a, b match.Event) int { return a.Minute - b.Minute })
	return out, nil
}

func hasGoalEvents(events []match.Event) bool {
	return slices.ContainsFunc(events, func(e match.Event) bool {
		return e.Type == match.EventGoal || e.Type == match.EventOwnGoal
	})
}

func normalizeIDs(ids []string) ([]string, error) {
	cleaned := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, value := range ids {
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if _, ok := seen[value]; ok {
			return nil, fmt.Errorf("%w: duplicate player id %s", ErrInvalidInput, value)
		}
		seen[value] = struct{}{}
		cleaned = append(cleaned, value)
	}
	return cleaned, nil
}
