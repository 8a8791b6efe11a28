package apisports

// GamesResponse is the envelope of /games.
type GamesResponse struct {
	Response []Game `json:"response"`
}

type Game struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status Status `json:"status"`
	League League `json:"league"`
	Teams  Teams  `json:"teams"`
	Scores Scores `json:"scores"`
}

type Status struct {
	Short string `json:"short"` // "NS", "LIVE", "FT", ...
}

type League struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Teams struct {
	Home Team `json:"home"`
	Away Team `json:"away"`
}

type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Scores struct {
	Home int `json:"home"`
	Away int `json:"away"`
}
