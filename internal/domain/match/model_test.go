package match

import "testing"

func intPtr(v int) *int { return &v }

func TestMatch_Validate(t *testing.T) {
	base := Match{
		ID:          "m1",
		Competition: CompetitionLeague,
		Date:        "2025-03-14",
		Time:        "20:30",
		HomeTeamID:  "t1",
		AwayTeamID:  "t2",
		Status:      StatusScheduled,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]func(m *Match){
		"same team":        func(m *Match) { m.AwayTeamID = m.HomeTeamID },
		"bad date":         func(m *Match) { m.Date = "14/03/2025" },
		"bad time":         func(m *Match) { m.Time = "25:00" },
		"bad competition":  func(m *Match) { m.Competition = "friendly" },
		"negative score":   func(m *Match) { m.HomeScore = intPtr(-1) },
		"played no scores": func(m *Match) { m.Status = StatusPlayed },
	}
	for name, mutate := range cases {
		m := base
		mutate(&m)
		if err := m.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestMatch_ResultHelpers(t *testing.T) {
	m := Match{
		HomeTeamID: "t1",
		AwayTeamID: "t2",
		HomeScore:  intPtr(2),
		AwayScore:  intPtr(1),
		Status:     StatusPlayed,
		Events: []Event{
			{Type: EventGoal, PlayerID: "p1", TeamID: "t1"},
			{Type: EventOwnGoal, PlayerID: "p9", TeamID: "t2"},
			{Type: EventGoal, PlayerID: "p7", TeamID: "t2"},
			{Type: EventYellowCard, PlayerID: "p1", TeamID: "t1"},
		},
	}

	if got := m.WinnerTeamID(); got != "t1" {
		t.Fatalf("unexpected winner %q", got)
	}
	if m.GoalsFor("t1") != 2 || m.GoalsFor("t2") != 1 {
		t.Fatalf("unexpected goal counts: %d-%d", m.GoalsFor("t1"), m.GoalsFor("t2"))
	}
	if m.Opponent("t2") != "t1" || m.Opponent("t3") != "" {
		t.Fatalf("unexpected opponent lookup")
	}

	m.Status = StatusScheduled
	if m.WinnerTeamID() != "" {
		t.Fatalf("scheduled match must not have a winner")
	}
}

func TestParseCompetitionAndStatus(t *testing.T) {
	if c, err := ParseCompetition(" Cup "); err != nil || c != CompetitionCup {
		t.Fatalf("unexpected competition: %q %v", c, err)
	}
	if _, err := ParseCompetition("friendly"); err == nil {
		t.Fatalf("expected unknown competition error")
	}
	if s, err := ParseStatus(""); err != nil || s != StatusScheduled {
		t.Fatalf("unexpected default status: %q %v", s, err)
	}
}

func TestMatch_KickoffKey(t *testing.T) {
	early := Match{Date: "2026-12-05", Time: "9:30"}
	late := Match{Date: "2026-12-05", Time: "10:00"}
	if !(early.KickoffKey() < late.KickoffKey()) {
		t.Fatalf("expected %q to sort before %q", early.KickoffKey(), late.KickoffKey())
	}

	withSeconds := Match{Date: "2026-12-05", Time: "10:00:00"}
	if withSeconds.KickoffKey() != late.KickoffKey() {
		t.Fatalf("expected %q and %q to share a key", withSeconds.KickoffKey(), late.KickoffKey())
	}

	if got := (Match{Date: "tbd", Time: "20:00"}).KickoffKey(); got != "tbd 20:00" {
		t.Fatalf("unexpected fallback key %q", got)
	}
}
