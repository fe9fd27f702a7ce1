package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/domain/finance"
	"github.com/riskibarqy/minivoetbal/internal/domain/match"
	"github.com/riskibarqy/minivoetbal/internal/domain/player"
	"github.com/riskibarqy/minivoetbal/internal/domain/team"
	"github.com/shopspring/decimal"
)

const (
	TeamIDKelder    = "team-kelder"
	TeamIDZwaluwen  = "team-zwaluwen"
	TeamIDBierpomp  = "team-bierpomp"
	TeamIDCafeSport = "team-cafe-sport"
)

var seedCreatedAt = time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDKelder, Name: "FC De Kelder", ShortName: "KEL", CaptainName: "Jan Peeters", ContactEmail: "kelder@example.org", CreatedAt: seedCreatedAt},
		{ID: TeamIDZwaluwen, Name: "De Zwaluwen", ShortName: "ZWA", CaptainName: "Pieter Claes", ContactEmail: "zwaluwen@example.org", CreatedAt: seedCreatedAt},
		{ID: TeamIDBierpomp, Name: "VK Bierpomp", ShortName: "BIE", CaptainName: "Tom Wouters", ContactEmail: "bierpomp@example.org", CreatedAt: seedCreatedAt},
		{ID: TeamIDCafeSport, Name: "Cafe Sport", ShortName: "CAF", CaptainName: "Koen Janssens", ContactEmail: "cafesport@example.org", CreatedAt: seedCreatedAt},
	}
}

// SeedPlayers registers six players per seeded team, numbered 1..6.
func SeedPlayers() []player.Player {
	firstNames := []string{"Jan", "Pieter", "Tom", "Koen", "Wout", "Stijn"}
	out := make([]player.Player, 0, len(firstNames)*4)
	for _, t := range SeedTeams() {
		for i, first := range firstNames {
			out = append(out, player.Player{
				ID:           fmt.Sprintf("%s-p%d", t.ID, i+1),
				TeamID:       t.ID,
				FirstName:    first,
				LastName:     t.ShortName,
				JerseyNumber: i + 1,
				IsActive:     true,
			})
		}
	}
	return out
}

func SeedMatches() []match.Match {
	score := func(v int) *int { return &v }
	return []match.Match{
		{
			ID: "match-1", Competition: match.CompetitionLeague, Round: 1,
			Date: "2025-09-05", Time: "20:00", Location: "Sporthal De Molen",
			HomeTeamID: TeamIDKelder, AwayTeamID: TeamIDZwaluwen,
			HomeScore: score(3), AwayScore: score(2), Status: match.StatusPlayed,
			CreatedAt: seedCreatedAt, UpdatedAt: seedCreatedAt,
		},
		{
			ID: "match-2", Competition: match.CompetitionLeague, Round: 1,
			Date: "2025-09-05", Time: "21:00", Location: "Sporthal De Molen",
			HomeTeamID: TeamIDBierpomp, AwayTeamID: TeamIDCafeSport,
			HomeScore: score(1), AwayScore: score(1), Status: match.StatusPlayed,
			CreatedAt: seedCreatedAt, UpdatedAt: seedCreatedAt,
		},
		{
			ID: "match-3", Competition: match.CompetitionLeague, Round: 2,
			Date: "2026-11-13", Time: "20:00", Location: "Sporthal De Molen",
			HomeTeamID: TeamIDZwaluwen, AwayTeamID: TeamIDBierpomp,
			Status:    match.StatusScheduled,
			CreatedAt: seedCreatedAt, UpdatedAt: seedCreatedAt,
		},
		{
			ID: "match-4", Competition: match.CompetitionCup, Round: 1, BracketSlot: 1,
			Date: "2026-11-20", Time: "20:30", Location: "Sporthal Ter Heide",
			HomeTeamID: TeamIDCafeSport, AwayTeamID: TeamIDKelder,
			Status:    match.StatusScheduled,
			CreatedAt: seedCreatedAt, UpdatedAt: seedCreatedAt,
		},
	}
}

func SeedTransactions() []finance.Transaction {
	fee := decimal.RequireFromString("150.00")
	out := make([]finance.Transaction, 0, 4)
	for _, t := range SeedTeams() {
		out = append(out, finance.Transaction{
			ID:          "tx-fee-" + t.ID,
			TeamID:      t.ID,
			Kind:        finance.KindFee,
			Amount:      fee,
			Description: "season registration fee",
			OccurredOn:  seedCreatedAt,
			CreatedAt:   seedCreatedAt,
		})
	}
	return out
}
