package apisports

import (
	"context"
	"log/slog"
	"time"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/config"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/league"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources"
)

const sourceName = "apisports"

func init() {
	sources.Register(sourceName, func(cfg *config.Config) sources.Source {
		return NewSource(cfg)
	})
}

type Source struct {
	client *Client
	apiKey string
}

func NewSource(cfg *config.Config) *Source {
	c := cfg.Sources.APISports
	return &Source{
		client: NewClient(c.BaseURL, c.APIKey, c.Timeout),
		apiKey: c.APIKey,
	}
}

func (s *Source) Name() string { return sourceName }

// Enabled is false without an API key; the pipeline then reports the source
// as unconfigured instead of failing requests against it.
func (s *Source) Enabled() bool { return s.apiKey != "" }

func (s *Source) FetchLive(ctx context.Context) (sources.Batch, error) {
	resp, err := s.client.GetLiveGames(ctx)
	if err != nil {
		return sources.Batch{}, err
	}
	return s.normalize(resp), nil
}

func (s *Source) FetchScheduled(ctx context.Context, day time.Time) (sources.Batch, error) {
	resp, err := s.client.GetGamesByDate(ctx, day.Format("2006-01-02"))
	if err != nil {
		return sources.Batch{}, err
	}
	return s.normalize(resp), nil
}

func (s *Source) normalize(resp *GamesResponse) sources.Batch {
	var batch sources.Batch
	for i := range resp.Response {
		g := &resp.Response[i]
		m, skip := GameToMatch(g)
		text := ClassifierText(g)
		batch.Add(sources.Normalized{
			Match:      m,
			Tournament: g.League.Name,
			Text:       text,
			InScope:    league.IsInScope(text),
		}, skip)
	}
	if batch.Dropped > 0 {
		slog.Debug("apisports: события отброшены при нормализации", "dropped", batch.Dropped)
	}
	return batch
}
