package httpapi

import (
	"time"

	"github.com/riskibarqy/minivoetbal/internal/domain/access"
	"github.com/riskibarqy/minivoetbal/internal/domain/bracket"
	"github.com/riskibarqy/minivoetbal/internal/domain/finance"
	"github.com/riskibarqy/minivoetbal/internal/domain/match"
	"github.com/riskibarqy/minivoetbal/internal/domain/player"
	"github.com/riskibarqy/minivoetbal/internal/domain/standing"
	"github.com/riskibarqy/minivoetbal/internal/domain/suspension"
	"github.com/riskibarqy/minivoetbal/internal/domain/team"
	"github.com/riskibarqy/minivoetbal/internal/domain/user"
	"github.com/riskibarqy/minivoetbal/internal/usecase"
)

const dateLayout = "2006-01-02"

type teamDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ShortName    string    `json:"short_name,omitempty"`
	CaptainName  string    `json:"captain_name,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type playerDTO struct {
	ID           string `json:"id"`
	TeamID       string `json:"team_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	FullName     string `json:"full_name"`
	JerseyNumber int    `json:"jersey_number"`
	IsActive     bool   `json:"is_active"`
}

type editDecisionDTO struct {
	CanEdit      bool `json:"can_edit"`
	IsAutoLocked bool `json:"is_auto_locked"`
}

type matchEventDTO struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
	TeamID   string `json:"team_id"`
	Minute   int    `json:"minute"`
}

type matchDTO struct {
	ID               string           `json:"id"`
	Competition      string           `json:"competition"`
	Round            int              `json:"round"`
	BracketSlot      int              `json:"bracket_slot,omitempty"`
	Date             string           `json:"date"`
	Time             string           `json:"time"`
	Location         string           `json:"location,omitempty"`
	HomeTeamID       string           `json:"home_team_id"`
	AwayTeamID       string           `json:"away_team_id"`
	HomeScore        *int             `json:"home_score"`
	AwayScore        *int             `json:"away_score"`
	Status           string           `json:"status"`
	IsManuallyLocked bool             `json:"is_manually_locked"`
	RefereeID        string           `json:"referee_id,omitempty"`
	HomeLineup       []string         `json:"home_lineup"`
	AwayLineup       []string         `json:"away_lineup"`
	Events           []matchEventDTO  `json:"events"`
	LockedBy         string           `json:"locked_by,omitempty"`
	LockedAt         *time.Time       `json:"locked_at,omitempty"`
	Decision         *editDecisionDTO `json:"decision,omitempty"`
}

type standingRowDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

type bracketEntryDTO struct {
	Match        matchDTO `json:"match"`
	WinnerTeamID string   `json:"winner_team_id,omitempty"`
}

type bracketRoundDTO struct {
	Number  int               `json:"number"`
	Entries []bracketEntryDTO `json:"entries"`
}

type bracketDTO struct {
	Competition string            `json:"competition"`
	Rounds      []bracketRoundDTO `json:"rounds"`
}

type suspensionDTO struct {
	ID             string    `json:"id"`
	PlayerID       string    `json:"player_id"`
	TeamID         string    `json:"team_id"`
	Reason         string    `json:"reason"`
	Matches        int       `json:"matches"`
	ServedMatchIDs []string  `json:"served_match_ids"`
	Remaining      int       `json:"remaining"`
	Active         bool      `json:"active"`
	SourceMatchID  string    `json:"source_match_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type transactionDTO struct {
	ID           string    `json:"id"`
	TeamID       string    `json:"team_id"`
	Kind         string    `json:"kind"`
	Amount       string    `json:"amount"`
	SignedAmount string    `json:"signed_amount"`
	Description  string    `json:"description,omitempty"`
	OccurredOn   string    `json:"occurred_on"`
	CreatedAt    time.Time `json:"created_at"`
}

type balanceDTO struct {
	TeamID      string `json:"team_id"`
	Charged     string `json:"charged"`
	Paid        string `json:"paid"`
	Outstanding string `json:"outstanding"`
}

type teamAccountDTO struct {
	Balance      balanceDTO       `json:"balance"`
	Transactions []transactionDTO `json:"transactions"`
}

type userDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	TeamID    string    `json:"team_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      userDTO   `json:"user"`
}

type overviewDTO struct {
	TeamCount         int              `json:"team_count"`
	Upcoming          []matchDTO       `json:"upcoming"`
	LatestResults     []matchDTO       `json:"latest_results"`
	TopStandings      []standingRowDTO `json:"top_standings"`
	ActiveSuspensions int              `json:"active_suspensions"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:           v.ID,
		Name:         v.Name,
		ShortName:    v.ShortName,
		CaptainName:  v.CaptainName,
		ContactEmail: v.ContactEmail,
		CreatedAt:    v.CreatedAt,
	}
}

func teamsToDTO(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	return out
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:           v.ID,
		TeamID:       v.TeamID,
		FirstName:    v.FirstName,
		LastName:     v.LastName,
		FullName:     v.FullName(),
		JerseyNumber: v.JerseyNumber,
		IsActive:     v.IsActive,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	return out
}

func decisionToDTO(v access.EditDecision) editDecisionDTO {
	return editDecisionDTO{CanEdit: v.CanEdit, IsAutoLocked: v.IsAutoLocked}
}

func matchToDTO(v match.Match) matchDTO {
	events := make([]matchEventDTO, 0, len(v.Events))
	for _, event := range v.Events {
		events = append(events, matchEventDTO{
			Type:     string(event.Type),
			PlayerID: event.PlayerID,
			TeamID:   event.TeamID,
			Minute:   event.Minute,
		})
	}

	return matchDTO{
		ID:               v.ID,
		Competition:      string(v.Competition),
		Round:            v.Round,
		BracketSlot:      v.BracketSlot,
		Date:             v.Date,
		Time:             v.Time,
		Location:         v.Location,
		HomeTeamID:       v.HomeTeamID,
		AwayTeamID:       v.AwayTeamID,
		HomeScore:        v.HomeScore,
		AwayScore:        v.AwayScore,
		Status:           string(v.Status),
		IsManuallyLocked: v.IsManuallyLocked,
		RefereeID:        v.RefereeID,
		HomeLineup:       nonNil(v.HomeLineup),
		AwayLineup:       nonNil(v.AwayLineup),
		Events:           events,
		LockedBy:         v.LockedBy,
		LockedAt:         v.LockedAt,
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func matchViewToDTO(v usecase.MatchView) matchDTO {
	out := matchToDTO(v.Match)
	decision := decisionToDTO(v.Decision)
	out.Decision = &decision
	return out
}

func standingsToDTO(rows []standing.Row) []standingRowDTO {
	out := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingRowDTO{
			Position:       row.Position,
			TeamID:         row.TeamID,
			TeamName:       row.TeamName,
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		})
	}
	return out
}

func bracketToDTO(v bracket.Bracket) bracketDTO {
	rounds := make([]bracketRoundDTO, 0, len(v.Rounds))
	for _, round := range v.Rounds {
		entries := make([]bracketEntryDTO, 0, len(round.Entries))
		for _, entry := range round.Entries {
			entries = append(entries, bracketEntryDTO{
				Match:        matchToDTO(entry.Match),
				WinnerTeamID: entry.WinnerTeamID,
			})
		}
		rounds = append(rounds, bracketRoundDTO{Number: round.Number, Entries: entries})
	}
	return bracketDTO{Competition: string(v.Competition), Rounds: rounds}
}

func suspensionToDTO(v suspension.Suspension) suspensionDTO {
	return suspensionDTO{
		ID:             v.ID,
		PlayerID:       v.PlayerID,
		TeamID:         v.TeamID,
		Reason:         v.Reason,
		Matches:        v.Matches,
		ServedMatchIDs: nonNil(v.ServedMatchIDs),
		Remaining:      v.Remaining(),
		Active:         v.Active(),
		SourceMatchID:  v.SourceMatchID,
		CreatedAt:      v.CreatedAt,
	}
}

func suspensionsToDTO(items []suspension.Suspension) []suspensionDTO {
	out := make([]suspensionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, suspensionToDTO(item))
	}
	return out
}

func transactionToDTO(v finance.Transaction) transactionDTO {
	return transactionDTO{
		ID:           v.ID,
		TeamID:       v.TeamID,
		Kind:         string(v.Kind),
		Amount:       v.Amount.StringFixed(2),
		SignedAmount: v.Signed().StringFixed(2),
		Description:  v.Description,
		OccurredOn:   v.OccurredOn.Format(dateLayout),
		CreatedAt:    v.CreatedAt,
	}
}

func transactionsToDTO(items []finance.Transaction) []transactionDTO {
	out := make([]transactionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, transactionToDTO(item))
	}
	return out
}

func balanceToDTO(v finance.Balance) balanceDTO {
	return balanceDTO{
		TeamID:      v.TeamID,
		Charged:     v.Charged.StringFixed(2),
		Paid:        v.Paid.StringFixed(2),
		Outstanding: v.Outstanding.StringFixed(2),
	}
}

func balancesToDTO(items []finance.Balance) []balanceDTO {
	out := make([]balanceDTO, 0, len(items))
	for _, item := range items {
		out = append(out, balanceToDTO(item))
	}
	return out
}

// userToDTO never exposes the password hash.
func userToDTO(v user.User) userDTO {
	return userDTO{
		ID:        v.ID,
		Username:  v.Username,
		Role:      v.Role.String(),
		TeamID:    v.TeamID,
		CreatedAt: v.CreatedAt,
	}
}

func usersToDTO(items []user.User) []userDTO {
	out := make([]userDTO, 0, len(items))
	for _, item := range items {
		out = append(out, userToDTO(item))
	}
	return out
}

func overviewToDTO(v usecase.Overview) overviewDTO {
	return overviewDTO{
		TeamCount:         v.TeamCount,
		Upcoming:          matchesToDTO(v.Upcoming),
		LatestResults:     matchesToDTO(v.LatestResults),
		TopStandings:      standingsToDTO(v.TopStandings),
		ActiveSuspensions: v.ActiveSuspensions,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
