package sources

import (
	"time"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/identity"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
)

// BuildPlayer assembles a synthetic player profile for an upstream
// participant. The upstream id is preferred; the name doubles as the id when
// the source has none.
func BuildPlayer(id, name string) models.Player {
	if id == "" {
		id = name
	}
	rating := identity.Rating(name)
	return models.Player{
		ID:         id,
		Name:       name,
		Rating:     rating,
		WinRate:    identity.WinRate(rating),
		RecentForm: identity.RecentForm(name),
		Country:    "RU",
	}
}

// StartTime formats an upstream unix timestamp as RFC 3339 UTC, defaulting
// to the current time when the timestamp is absent or zero.
func StartTime(unix int64) string {
	if unix <= 0 {
		return time.Now().UTC().Format(time.RFC3339)
	}
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}
