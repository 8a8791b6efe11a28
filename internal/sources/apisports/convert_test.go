package apisports

import (
	"testing"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources"
)

func sampleGame() *Game {
	return &Game{
		ID:     777,
		Date:   "2026-08-29T12:00:00+00:00",
		Status: Status{Short: "LIVE"},
		League: League{ID: 1, Name: "Setka Cup"},
		Teams: Teams{
			Home: Team{ID: 10, Name: "Smirnov A."},
			Away: Team{ID: 20, Name: "Sokolov M."},
		},
		Scores: Scores{Home: 2, Away: 0},
	}
}

func TestGameToMatchStatusMapping(t *testing.T) {
	tests := []struct {
		raw  string
		want models.MatchStatus
	}{
		{"LIVE", models.StatusLive},
		{"inprogress", models.StatusLive},
		{"FT", models.StatusFinished},
		{"finished", models.StatusFinished},
		{"NS", models.StatusUpcoming},
	}
	for _, tt := range tests {
		g := sampleGame()
		g.Status.Short = tt.raw
		m, skip := GameToMatch(g)
		if skip != sources.SkipNone {
			t.Fatalf("status %q: unexpected skip %v", tt.raw, skip)
		}
		if m.Status != tt.want {
			t.Errorf("status %q → %q, want %q", tt.raw, m.Status, tt.want)
		}
	}
}

func TestGameToMatchMissingName(t *testing.T) {
	g := sampleGame()
	g.Teams.Home.Name = ""
	if _, skip := GameToMatch(g); skip != sources.SkipMissingPlayers {
		t.Errorf("skip = %v, want SkipMissingPlayers", skip)
	}
}

func TestGameToMatchFields(t *testing.T) {
	m, _ := GameToMatch(sampleGame())

	if m.ID != "777" {
		t.Errorf("ID = %q", m.ID)
	}
	if m.StartTime != "2026-08-29T12:00:00Z" {
		t.Errorf("StartTime = %q", m.StartTime)
	}
	if m.League != "Сетка Кап" {
		t.Errorf("league = %q", m.League)
	}
	if m.Score == nil || m.Score.P1 != 2 || m.Score.P2 != 0 {
		t.Errorf("score = %+v", m.Score)
	}
}

func TestGameToMatchZeroScoreOmitted(t *testing.T) {
	g := sampleGame()
	g.Scores = Scores{}
	m, _ := GameToMatch(g)
	if m.Score != nil {
		t.Errorf("0:0 live score must be omitted, got %+v", m.Score)
	}
}

func TestGameToMatchUnparseableDate(t *testing.T) {
	g := sampleGame()
	g.Date = "garbage"
	m, _ := GameToMatch(g)
	if m.StartTime == "" {
		t.Error("StartTime must fall back to now, got empty")
	}
}
