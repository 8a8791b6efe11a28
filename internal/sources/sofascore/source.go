package sofascore

import (
	"context"
	"log/slog"
	"time"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/config"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/league"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources"
)

const sourceName = "sofascore"

func init() {
	sources.Register(sourceName, func(cfg *config.Config) sources.Source {
		return NewSource(cfg)
	})
}

type Source struct {
	client *Client
}

func NewSource(cfg *config.Config) *Source {
	c := cfg.Sources.Sofascore
	return &Source{client: NewClient(c.BaseURL, c.Timeout)}
}

func (s *Source) Name() string { return sourceName }

// Enabled is always true: the endpoint is public and needs no credentials.
func (s *Source) Enabled() bool { return true }

func (s *Source) FetchLive(ctx context.Context) (sources.Batch, error) {
	resp, err := s.client.GetLiveEvents(ctx)
	if err != nil {
		return sources.Batch{}, err
	}
	return s.normalize(resp), nil
}

func (s *Source) FetchScheduled(ctx context.Context, day time.Time) (sources.Batch, error) {
	resp, err := s.client.GetScheduledEvents(ctx, day.Format("2006-01-02"))
	if err != nil {
		return sources.Batch{}, err
	}
	return s.normalize(resp), nil
}

func (s *Source) normalize(resp *EventsResponse) sources.Batch {
	var batch sources.Batch
	for i := range resp.Events {
		ev := &resp.Events[i]
		m, skip := EventToMatch(ev)
		text := ev.ClassifierText()
		batch.Add(sources.Normalized{
			Match:      m,
			Tournament: ev.Tournament.Name,
			Text:       text,
			InScope:    league.IsInScope(text),
		}, skip)
	}
	if batch.Dropped > 0 {
		slog.Debug("sofascore: события отброшены при нормализации", "dropped", batch.Dropped)
	}
	return batch
}
