package ttfeed

import (
	"context"
	"log/slog"
	"time"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/config"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/league"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources"
)

const sourceName = "ttfeed"

func init() {
	sources.Register(sourceName, func(cfg *config.Config) sources.Source {
		return NewSource(cfg)
	})
}

type Source struct {
	client  *Client
	feedURL string
}

func NewSource(cfg *config.Config) *Source {
	c := cfg.Sources.TTFeed
	return &Source{
		client:  NewClient(c.FeedURL, c.Timeout),
		feedURL: c.FeedURL,
	}
}

func (s *Source) Name() string { return sourceName }

// Enabled is false without a feed URL.
func (s *Source) Enabled() bool { return s.feedURL != "" }

// FetchLive returns the live subset of the feed. The feed is one body for
// all statuses, so both fetches decode it and filter.
func (s *Source) FetchLive(ctx context.Context) (sources.Batch, error) {
	return s.fetch(ctx, func(rec *Record) bool { return rec.Status == "L" })
}

// FetchScheduled returns the feed entries starting on the given day.
func (s *Source) FetchScheduled(ctx context.Context, day time.Time) (sources.Batch, error) {
	date := day.Format("2006-01-02")
	return s.fetch(ctx, func(rec *Record) bool {
		return rec.Status != "L" && time.Unix(rec.StartUnix, 0).UTC().Format("2006-01-02") == date
	})
}

func (s *Source) fetch(ctx context.Context, keep func(*Record) bool) (sources.Batch, error) {
	body, err := s.client.GetFeed(ctx)
	if err != nil {
		return sources.Batch{}, err
	}

	records, malformed := ParseFeed(body)
	batch := sources.Batch{Dropped: malformed}
	for i := range records {
		rec := &records[i]
		if !keep(rec) {
			continue
		}
		m, skip := RecordToMatch(rec)
		text := ClassifierText(rec)
		batch.Add(sources.Normalized{
			Match:      m,
			Tournament: rec.Tournament,
			Text:       text,
			InScope:    league.IsInScope(text),
		}, skip)
	}
	if batch.Dropped > 0 {
		slog.Debug("ttfeed: записи отброшены при разборе фида", "dropped", batch.Dropped)
	}
	return batch, nil
}
