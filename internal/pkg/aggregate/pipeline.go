// Package aggregate orchestrates the fetch → normalize → filter → predict →
// sort chain across all configured sources.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/prediction"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources"
)

// HighConfThreshold is the confidence bar for the highConfCount counter and
// the highConf request filter.
const HighConfThreshold = 75

// Options are the per-request knobs of the pipeline.
type Options struct {
	Mode         string // "live", "today" or "all" (default); which fetches run
	ShowAll      bool   // disable the league-pro scope filter
	League       string // keep only matches with this classified label
	HighConfOnly bool   // keep only predictions at or above HighConfThreshold
	Debug        bool   // include per-tournament classification counters
}

type Pipeline struct {
	sources      []sources.Source
	scheduleDays int // calendar days each side of today to query
	now          func() time.Time
}

func New(srcs []sources.Source, scheduleDays int) *Pipeline {
	if scheduleDays <= 0 {
		scheduleDays = 1
	}
	return &Pipeline{
		sources:      srcs,
		scheduleDays: scheduleDays,
		now:          time.Now,
	}
}

// Run executes one aggregation cycle. Per-source failures never fail the
// run; they surface as diagnostic strings in the response. When every source
// yields nothing the response falls back to a deterministic synthetic set so
// it is never empty.
func (p *Pipeline) Run(ctx context.Context, opts Options) models.AggregateResponse {
	start := p.now()

	var (
		events       []sources.Normalized
		errs         []string
		dropped      int
		contributors []string
	)

	seen := make(map[string]bool)
	addBatch := func(batch sources.Batch) int {
		added := 0
		dropped += batch.Dropped
		for _, n := range batch.Events {
			if seen[n.Match.ID] {
				continue
			}
			seen[n.Match.ID] = true
			events = append(events, n)
			added++
		}
		return added
	}

	for _, src := range p.sources {
		if !src.Enabled() {
			errs = append(errs, fmt.Sprintf("%s: источник не настроен", src.Name()))
			continue
		}

		total := 0
		if opts.Mode != "today" {
			live, err := src.FetchLive(ctx)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: live: %v", src.Name(), err))
				slog.Warn("Источник не вернул live-события", "source", src.Name(), "error", err)
			} else {
				total += addBatch(live)
			}
		}

		if opts.Mode == "live" {
			if total > 0 {
				contributors = append(contributors, src.Name())
			}
			continue
		}

		for offset := -p.scheduleDays; offset <= p.scheduleDays; offset++ {
			day := start.AddDate(0, 0, offset)
			scheduled, err := src.FetchScheduled(ctx, day)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: scheduled %s: %v", src.Name(), day.Format("2006-01-02"), err))
				slog.Warn("Источник не вернул расписание", "source", src.Name(), "day", day.Format("2006-01-02"), "error", err)
				continue
			}
			total += addBatch(scheduled)
		}

		if total > 0 {
			contributors = append(contributors, src.Name())
		}
	}

	source := strings.Join(contributors, ",")
	if len(events) == 0 {
		events = SyntheticEvents(start)
		source = "synthetic"
		slog.Info("Все источники пусты, используется синтетический набор", "count", len(events))
	}

	var debug []models.TournamentStat
	if opts.Debug {
		debug = tournamentStats(events)
	}

	matches := make([]models.Match, 0, len(events))
	for _, n := range events {
		if !opts.ShowAll && !n.InScope {
			continue
		}
		m := n.Match
		if m.Prediction == nil {
			pred := prediction.Predict(m)
			m.Prediction = &pred
		}
		if opts.League != "" && m.League != opts.League {
			continue
		}
		if opts.HighConfOnly && m.Prediction.Confidence < HighConfThreshold {
			continue
		}
		matches = append(matches, m)
	}

	sortMatches(matches)

	resp := models.AggregateResponse{
		Matches:   matches,
		Count:     len(matches),
		Leagues:   distinctLeagues(matches),
		Source:    source,
		UpdatedAt: start.UTC().Format(time.RFC3339),
		Dropped:   dropped,
		Errors:    errs,
		Debug:     debug,
	}
	for _, m := range matches {
		switch m.Status {
		case models.StatusLive:
			resp.LiveCount++
		case models.StatusUpcoming:
			resp.UpcomingCount++
		}
		if m.Prediction != nil && m.Prediction.Confidence >= HighConfThreshold {
			resp.HighConfCount++
		}
	}
	return resp
}

// sortMatches orders by status (live, upcoming, finished), then confidence
// descending, then start time ascending.
func sortMatches(matches []models.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		ri, rj := models.StatusRank(matches[i].Status), models.StatusRank(matches[j].Status)
		if ri != rj {
			return ri < rj
		}
		ci, cj := confidenceOf(matches[i]), confidenceOf(matches[j])
		if ci != cj {
			return ci > cj
		}
		return matches[i].StartTime < matches[j].StartTime
	})
}

func confidenceOf(m models.Match) int {
	if m.Prediction == nil {
		return 0
	}
	return m.Prediction.Confidence
}

func distinctLeagues(matches []models.Match) []string {
	seen := make(map[string]bool)
	var leagues []string
	for _, m := range matches {
		if !seen[m.League] {
			seen[m.League] = true
			leagues = append(leagues, m.League)
		}
	}
	return leagues
}

func tournamentStats(events []sources.Normalized) []models.TournamentStat {
	byName := make(map[string]*models.TournamentStat)
	var order []string
	for _, n := range events {
		name := n.Tournament
		if name == "" {
			name = n.Match.League
		}
		st, ok := byName[name]
		if !ok {
			st = &models.TournamentStat{Name: name, Text: n.Text, InScope: n.InScope}
			byName[name] = st
			order = append(order, name)
		}
		switch n.Match.Status {
		case models.StatusLive:
			st.Live++
		case models.StatusUpcoming:
			st.Upcoming++
		case models.StatusFinished:
			st.Finished++
		}
	}
	sort.Strings(order)
	out := make([]models.TournamentStat, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}
