package bracket

import (
	"sort"

	"github.com/riskibarqy/minivoetbal/internal/domain/match"
)

// Entry is one match slot in a knockout round.
type Entry struct {
	Match        match.Match
	WinnerTeamID string
}

type Round struct {
	Number  int
	Entries []Entry
}

type Bracket struct {
	Competition match.Competition
	Rounds      []Round
}

// Build groups the knockout matches of competition by round, ascending.
// Within a round entries follow bracket slot, then kickoff. Cancelled
// matches are left out.
func Build(competition match.Competition, matches []match.Match) Bracket {
	byRound := make(map[int][]match.Match)
	for _, m := range matches {
		if m.Competition != competition || m.Status == match.StatusCancelled {
			continue
		}
		byRound[m.Round] = append(byRound[m.Round], m)
	}

	numbers := make([]int, 0, len(byRound))
	for n := range byRound {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	out := Bracket{Competition: competition, Rounds: make([]Round, 0, len(numbers))}
	for _, n := range numbers {
		items := byRound[n]
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].BracketSlot != items[j].BracketSlot {
				return items[i].BracketSlot < items[j].BracketSlot
			}
			return items[i].KickoffKey() < items[j].KickoffKey()
		})

		round := Round{Number: n, Entries: make([]Entry, 0, len(items))}
		for _, m := range items {
			round.Entries = append(round.Entries, Entry{Match: m, WinnerTeamID: m.WinnerTeamID()})
		}
		out.Rounds = append(out.Rounds, round)
	}

	return out
}
