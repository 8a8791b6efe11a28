package models

// MatchStatus is the canonical lifecycle state of a match.
type MatchStatus string

const (
	StatusLive     MatchStatus = "live"
	StatusUpcoming MatchStatus = "upcoming"
	StatusFinished MatchStatus = "finished"
)

// StatusRank returns the sort rank for a status: live first, then upcoming,
// then finished. Unknown statuses sort last.
func StatusRank(s MatchStatus) int {
	switch s {
	case StatusLive:
		return 0
	case StatusUpcoming:
		return 1
	case StatusFinished:
		return 2
	}
	return 3
}

// Player is a synthetic player profile. All attributes are derived from the
// player name alone, so the same name always yields the same profile.
type Player struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Rating     int      `json:"rating"`
	WinRate    float64  `json:"winRate"`
	RecentForm []string `json:"recentForm"` // 5 outcomes, "W" or "L"
	Country    string   `json:"country"`
}

// Odds is a priced pair of decimal coefficients, both clamped to [1.05, 8.0].
type Odds struct {
	P1Win float64 `json:"p1Win"`
	P2Win float64 `json:"p2Win"`
}

// Score is the current set count of a live or finished match.
type Score struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

// SetScore is the point score of one played set.
type SetScore struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

// BetType is a coarse label summarizing prediction confidence.
type BetType string

const (
	BetStrong BetType = "strong"
	BetMedium BetType = "medium"
	BetRisky  BetType = "risky"
	BetSkip   BetType = "skip"
)

// Prediction is a winner call with a confidence percentage and the rationale
// factors that produced it.
type Prediction struct {
	Winner     string   `json:"winner"` // "p1" or "p2"
	Confidence int      `json:"confidence"`
	Factors    []string `json:"factors"`
	BetType    BetType  `json:"betType"`
}

// Match is the canonical normalized event shape shared by every source.
type Match struct {
	ID         string      `json:"id"`
	Player1    Player      `json:"player1"`
	Player2    Player      `json:"player2"`
	StartTime  string      `json:"startTime"` // RFC 3339
	Status     MatchStatus `json:"status"`
	Odds       Odds        `json:"odds"`
	League     string      `json:"league"`
	Score      *Score      `json:"score,omitempty"`
	Sets       []SetScore  `json:"sets,omitempty"`
	Prediction *Prediction `json:"prediction,omitempty"`
}

// TournamentStat aggregates per-tournament event counts for debug responses.
type TournamentStat struct {
	Name     string `json:"name"`
	Text     string `json:"text"` // denormalized text used for keyword matching
	InScope  bool   `json:"inScope"`
	Live     int    `json:"live"`
	Upcoming int    `json:"upcoming"`
	Finished int    `json:"finished"`
}

// AggregateResponse is the payload of the /matches endpoint.
type AggregateResponse struct {
	Matches       []Match          `json:"matches"`
	Count         int              `json:"count"`
	LiveCount     int              `json:"liveCount"`
	UpcomingCount int              `json:"upcomingCount"`
	HighConfCount int              `json:"highConfCount"`
	Leagues       []string         `json:"leagues"`
	Source        string           `json:"source"`
	UpdatedAt     string           `json:"updatedAt"`
	Dropped       int              `json:"dropped,omitempty"`
	Errors        []string         `json:"errors,omitempty"`
	Debug         []TournamentStat `json:"debug,omitempty"`
}

// SaveResult reports the outcome of a batch prediction save.
type SaveResult struct {
	Saved   int      `json:"saved"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}

// LeagueStat is the per-league accuracy breakdown in the stats response.
type LeagueStat struct {
	League  string  `json:"league"`
	WinRate float64 `json:"winRate"`
	Total   int     `json:"total"`
	Correct int     `json:"correct"`
}

// DailyStat is the per-day accuracy breakdown in the stats response.
type DailyStat struct {
	Date    string  `json:"date"`
	WinRate float64 `json:"winRate"`
	Total   int     `json:"total"`
	Correct int     `json:"correct"`
}

// StatsResponse is the payload of the /stats endpoint.
type StatsResponse struct {
	Period      string       `json:"period"`
	Total       int          `json:"total"`
	Correct     int          `json:"correct"`
	Incorrect   int          `json:"incorrect"`
	Pending     int          `json:"pending"`
	WinRate     float64      `json:"winRate"`
	ROI         float64      `json:"roi"`
	AvgOdds     float64      `json:"avgOdds"`
	Streak      int          `json:"streak"`
	StrongCount int          `json:"strongCount"`
	MediumCount int          `json:"mediumCount"`
	RiskyCount  int          `json:"riskyCount"`
	ByLeague    []LeagueStat `json:"byLeague"`
	Daily       []DailyStat  `json:"daily"`
	UpdatedAt   string       `json:"updatedAt"`
}
