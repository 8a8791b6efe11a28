package sofascore

import (
	"strconv"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/league"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/oddsmath"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources"
)

const maxSets = 7

// EventToMatch normalizes one raw event into the canonical match shape.
func EventToMatch(ev *Event) (models.Match, sources.SkipReason) {
	p1Name, p2Name := ev.HomeTeam.Name, ev.AwayTeam.Name
	if p1Name == "" || p2Name == "" {
		return models.Match{}, sources.SkipMissingPlayers
	}

	var status models.MatchStatus
	switch ev.Status.Type {
	case "inprogress":
		status = models.StatusLive
	case "finished":
		status = models.StatusFinished
	default:
		status = models.StatusUpcoming
	}

	p1 := sources.BuildPlayer(teamID(ev.HomeTeam), p1Name)
	p2 := sources.BuildPlayer(teamID(ev.AwayTeam), p2Name)

	m := models.Match{
		ID:        strconv.FormatInt(ev.ID, 10),
		Player1:   p1,
		Player2:   p2,
		StartTime: sources.StartTime(ev.StartTimestamp),
		Status:    status,
		Odds:      oddsmath.FromRatings(p1.Rating, p2.Rating),
		League:    league.Classify(ev.ClassifierText(), ev.Tournament.Name),
	}

	if status != models.StatusUpcoming {
		m.Score = &models.Score{
			P1: intOrZero(ev.HomeScore.Current),
			P2: intOrZero(ev.AwayScore.Current),
		}
		m.Sets = extractSets(&ev.HomeScore, &ev.AwayScore)
	}

	return m, sources.SkipNone
}

// extractSets scans up to 7 period pairs in order, keeping only those where
// both sides report a value.
func extractSets(home, away *EventScore) []models.SetScore {
	var sets []models.SetScore
	for i := 1; i <= maxSets; i++ {
		h, a := home.period(i), away.period(i)
		if h == nil || a == nil {
			continue
		}
		sets = append(sets, models.SetScore{P1: *h, P2: *a})
	}
	return sets
}

func teamID(t Team) string {
	if t.ID == 0 {
		return ""
	}
	return strconv.FormatInt(t.ID, 10)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
