package standing

import (
	"sort"

	"github.com/riskibarqy/minivoetbal/internal/domain/match"
	"github.com/riskibarqy/minivoetbal/internal/domain/team"
)

const (
	PointsWin  = 3
	PointsDraw = 1
)

// Row is one line of the league table.
type Row struct {
	Position       int
	TeamID         string
	TeamName       string
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// Compute builds the league table from played league matches. Ties on
// points, goal difference and goals for are split by the points earned in
// matches between the tied teams, then by name.
func Compute(teams []team.Team, matches []match.Match) []Row {
	rows := make(map[string]*Row, len(teams))
	for _, t := range teams {
		rows[t.ID] = &Row{TeamID: t.ID, TeamName: t.Name}
	}

	played := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.Competition != match.CompetitionLeague || !m.IsPlayed() {
			continue
		}
		home, okHome := rows[m.HomeTeamID]
		away, okAway := rows[m.AwayTeamID]
		if !okHome || !okAway {
			continue
		}
		played = append(played, m)
		apply(home, *m.HomeScore, *m.AwayScore)
		apply(away, *m.AwayScore, *m.HomeScore)
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		r.GoalDifference = r.GoalsFor - r.GoalsAgainst
		out = append(out, *r)
	}

	sort.Slice(out, func(i, j int) bool {
		if c := compareTotals(out[i], out[j]); c != 0 {
			return c > 0
		}
		return out[i].TeamName < out[j].TeamName
	})

	for start := 0; start < len(out); {
		end := start + 1
		for end < len(out) && compareTotals(out[start], out[end]) == 0 {
			end++
		}
		if end-start > 1 {
			breakTie(out[start:end], played)
		}
		start = end
	}

	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

func apply(r *Row, scored, conceded int) {
	r.Played++
	r.GoalsFor += scored
	r.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		r.Won++
		r.Points += PointsWin
	case scored == conceded:
		r.Drawn++
		r.Points += PointsDraw
	default:
		r.Lost++
	}
}

func compareTotals(a, b Row) int {
	switch {
	case a.Points != b.Points:
		return a.Points - b.Points
	case a.GoalDifference != b.GoalDifference:
		return a.GoalDifference - b.GoalDifference
	default:
		return a.GoalsFor - b.GoalsFor
	}
}

// breakTie orders a group of level teams by a mini table of their mutual
// matches.
func breakTie(group []Row, played []match.Match) {
	inGroup := make(map[string]bool, len(group))
	for _, r := range group {
		inGroup[r.TeamID] = true
	}

	mutual := make(map[string]int, len(group))
	for _, m := range played {
		if !inGroup[m.HomeTeamID] || !inGroup[m.AwayTeamID] {
			continue
		}
		switch winner := m.WinnerTeamID(); winner {
		case "":
			mutual[m.HomeTeamID] += PointsDraw
			mutual[m.AwayTeamID] += PointsDraw
		default:
			mutual[winner] += PointsWin
		}
	}

	sort.SliceStable(group, func(i, j int) bool {
		if mutual[group[i].TeamID] != mutual[group[j].TeamID] {
			return mutual[group[i].TeamID] > mutual[group[j].TeamID]
		}
		return group[i].TeamName < group[j].TeamName
	})
}
