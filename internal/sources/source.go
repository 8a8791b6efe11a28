// Package sources defines the contract every upstream event provider
// implements and a registry used by the aggregation pipeline to construct
// the enabled ones.
package sources

import (
	"context"
	"time"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
)

// SkipReason explains why one raw upstream event could not be normalized.
// Skipped events never abort a batch; they are counted and dropped.
type SkipReason string

const (
	SkipNone           SkipReason = ""
	SkipMissingPlayers SkipReason = "missing player names"
	SkipMalformed      SkipReason = "malformed record"
)

// Normalized is one canonical match plus the tournament metadata the
// pipeline needs for scope filtering and debug counters.
type Normalized struct {
	Match      models.Match
	Tournament string // raw upstream tournament name
	Text       string // denormalized lowercase text used for keyword matching
	InScope    bool
}

// Batch is the result of normalizing one upstream fetch.
type Batch struct {
	Events  []Normalized
	Dropped int
}

// Add appends a normalized event or accounts for a skipped one.
func (b *Batch) Add(n Normalized, skip SkipReason) {
	if skip != SkipNone {
		b.Dropped++
		return
	}
	b.Events = append(b.Events, n)
}

// Source fetches raw events from one upstream provider and normalizes them
// into canonical matches.
type Source interface {
	// Name returns the source name used in logs and response diagnostics.
	Name() string

	// Enabled reports whether the source has the configuration it needs
	// (credentials, feed URL). Disabled sources are skipped with a
	// diagnostic instead of failing the pipeline.
	Enabled() bool

	// FetchLive returns currently running events.
	FetchLive(ctx context.Context) (Batch, error)

	// FetchScheduled returns events scheduled on the given calendar day.
	FetchScheduled(ctx context.Context, day time.Time) (Batch, error)
}
