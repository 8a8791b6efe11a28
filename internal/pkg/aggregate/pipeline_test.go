package aggregate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources"
)

type fakeSource struct {
	name      string
	enabled   bool
	live      sources.Batch
	scheduled sources.Batch
	liveErr   error
	schedErr  error
}

func (f *fakeSource) Name() string  { return f.name }
func (f *fakeSource) Enabled() bool { return f.enabled }

func (f *fakeSource) FetchLive(ctx context.Context) (sources.Batch, error) {
	return f.live, f.liveErr
}

func (f *fakeSource) FetchScheduled(ctx context.Context, day time.Time) (sources.Batch, error) {
	return f.scheduled, f.schedErr
}

func event(id string, status models.MatchStatus, p1, p2 string, inScope bool) sources.Normalized {
	return sources.Normalized{
		Match: models.Match{
			ID:        id,
			Player1:   models.Player{ID: p1, Name: p1, Rating: 1850, WinRate: 65.0, RecentForm: []string{"W", "L", "W", "L", "W"}},
			Player2:   models.Player{ID: p2, Name: p2, Rating: 1850, WinRate: 65.0, RecentForm: []string{"W", "L", "W", "L", "W"}},
			StartTime: "2026-08-29T10:00:00Z",
			Status:    status,
			Odds:      models.Odds{P1Win: 1.89, P2Win: 1.89},
			League:    "Лига Про Россия",
		},
		Tournament: "Liga Pro",
		Text:       "liga pro russia",
		InScope:    inScope,
	}
}

func TestRunSortOrder(t *testing.T) {
	src := &fakeSource{
		name:    "fake",
		enabled: true,
		live: sources.Batch{Events: []sources.Normalized{
			event("f1", models.StatusFinished, "Ivanov A.", "Petrov V.", true),
			event("u1", models.StatusUpcoming, "Smirnov K.", "Sokolov M.", true),
			event("l1", models.StatusLive, "Popov I.", "Lebedev N.", true),
		}},
	}
	p := New([]sources.Source{src}, 1)
	resp := p.Run(context.Background(), Options{})

	if len(resp.Matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(resp.Matches))
	}
	wantOrder := []models.MatchStatus{models.StatusLive, models.StatusUpcoming, models.StatusFinished}
	for i, want := range wantOrder {
		if resp.Matches[i].Status != want {
			t.Errorf("matches[%d].Status = %q, want %q", i, resp.Matches[i].Status, want)
		}
	}
	if resp.LiveCount != 1 || resp.UpcomingCount != 1 {
		t.Errorf("liveCount=%d upcomingCount=%d, want 1/1", resp.LiveCount, resp.UpcomingCount)
	}
}

func TestRunConfidenceOrderWithinStatus(t *testing.T) {
	strong := event("s1", models.StatusUpcoming, "Ivanov A.", "Petrov V.", true)
	strong.Match.Player1.Rating = 1999
	strong.Match.Player2.Rating = 1700
	weak := event("w1", models.StatusUpcoming, "Smirnov K.", "Sokolov M.", true)

	src := &fakeSource{name: "fake", enabled: true, live: sources.Batch{Events: []sources.Normalized{weak, strong}}}
	resp := New([]sources.Source{src}, 1).Run(context.Background(), Options{})

	if len(resp.Matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(resp.Matches))
	}
	if resp.Matches[0].ID != "s1" {
		t.Errorf("higher confidence must sort first, got %q", resp.Matches[0].ID)
	}
}

func TestRunDedupeAcrossFetches(t *testing.T) {
	same := event("dup", models.StatusUpcoming, "Ivanov A.", "Petrov V.", true)
	src := &fakeSource{
		name:      "fake",
		enabled:   true,
		live:      sources.Batch{Events: []sources.Normalized{same}},
		scheduled: sources.Batch{Events: []sources.Normalized{same}},
	}
	resp := New([]sources.Source{src}, 1).Run(context.Background(), Options{})

	if len(resp.Matches) != 1 {
		t.Fatalf("got %d matches, want 1 after dedupe", len(resp.Matches))
	}
}

func TestRunScopeFilter(t *testing.T) {
	src := &fakeSource{
		name:    "fake",
		enabled: true,
		live: sources.Batch{Events: []sources.Normalized{
			event("in", models.StatusUpcoming, "Ivanov A.", "Petrov V.", true),
			event("out", models.StatusUpcoming, "Smirnov K.", "Sokolov M.", false),
		}},
	}
	p := New([]sources.Source{src}, 1)

	resp := p.Run(context.Background(), Options{})
	if len(resp.Matches) != 1 || resp.Matches[0].ID != "in" {
		t.Errorf("scope filter failed: %d matches", len(resp.Matches))
	}

	all := p.Run(context.Background(), Options{ShowAll: true})
	if len(all.Matches) != 2 {
		t.Errorf("showAll must disable the filter, got %d matches", len(all.Matches))
	}
}

func TestRunSyntheticFallback(t *testing.T) {
	src := &fakeSource{name: "fake", enabled: true, liveErr: errors.New("timeout"), schedErr: errors.New("timeout")}
	resp := New([]sources.Source{src}, 1).Run(context.Background(), Options{})

	if len(resp.Matches) == 0 {
		t.Fatal("fallback response must not be empty")
	}
	if resp.Source != "synthetic" {
		t.Errorf("source = %q, want synthetic", resp.Source)
	}
	if len(resp.Errors) == 0 {
		t.Error("fetch failures must surface as diagnostics")
	}
	for _, m := range resp.Matches {
		if m.Prediction == nil {
			t.Errorf("match %s has no prediction", m.ID)
		}
	}
}

func TestRunDisabledSourceDiagnostic(t *testing.T) {
	src := &fakeSource{name: "apisports", enabled: false}
	resp := New([]sources.Source{src}, 1).Run(context.Background(), Options{})

	found := false
	for _, e := range resp.Errors {
		if strings.HasPrefix(e, "apisports:") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unconfigured-source diagnostic, got %v", resp.Errors)
	}
}

func TestSyntheticEventsDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC)
	first := SyntheticEvents(now)
	second := SyntheticEvents(now.Add(10 * time.Minute)) // same hour bucket

	if len(first) == 0 || len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Match.Player1.Name != second[i].Match.Player1.Name {
			t.Errorf("event %d differs within the same seed bucket", i)
		}
	}
}
