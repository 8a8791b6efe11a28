package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/config"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
	_ "github.com/lib/pq"
)

// Ensure PostgresStorage implements PredictionStorage
var _ PredictionStorage = (*PostgresStorage)(nil)

// streakWindow limits how many finished predictions the streak counter scans.
const streakWindow = 50

// PostgresStorage persists predictions and computes accuracy statistics.
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a new PostgreSQL storage for predictions.
func NewPostgresStorage(cfg *config.PostgresConfig) (*PostgresStorage, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresStorage{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL prediction storage initialized successfully")
	return s, nil
}

func (s *PostgresStorage) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS predictions (
		match_id VARCHAR(200) PRIMARY KEY,
		match_name VARCHAR(500) NOT NULL,
		league VARCHAR(200) NOT NULL DEFAULT '',
		predicted_winner VARCHAR(200) NOT NULL,
		actual_winner VARCHAR(200),
		confidence INT NOT NULL,
		bet_type VARCHAR(20) NOT NULL,
		p1_odds DECIMAL(10, 2) NOT NULL DEFAULT 0,
		p2_odds DECIMAL(10, 2) NOT NULL DEFAULT 0,
		is_correct BOOLEAN,
		match_start_time TIMESTAMP,
		match_finish_time TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at);
	CREATE INDEX IF NOT EXISTS idx_predictions_league ON predictions(league);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// SaveBatch upserts one row per match. A first save records the prediction;
// repeated saves only refresh outcome columns, so the original call is never
// overwritten once the match finishes. Per-row failures are collected and do
// not abort the rest of the batch.
func (s *PostgresStorage) SaveBatch(ctx context.Context, matches []models.Match) models.SaveResult {
	var result models.SaveResult

	query := `
	INSERT INTO predictions (
		match_id, match_name, league, predicted_winner, actual_winner,
		confidence, bet_type, p1_odds, p2_odds, is_correct,
		match_start_time, match_finish_time
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (match_id) DO UPDATE SET
		actual_winner = COALESCE(EXCLUDED.actual_winner, predictions.actual_winner),
		is_correct = COALESCE(EXCLUDED.is_correct, predictions.is_correct),
		match_finish_time = COALESCE(EXCLUDED.match_finish_time, predictions.match_finish_time),
		updated_at = NOW()
	RETURNING (xmax = 0)
	`

	for _, m := range matches {
		if m.Prediction == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: нет прогноза", m.ID))
			continue
		}

		predicted := PredictedName(m)
		actual, finished := ActualWinner(m)

		var actualArg any
		var correctArg any
		var finishArg any
		if finished && actual != "" {
			actualArg = actual
			correctArg = actual == predicted
			finishArg = time.Now().UTC()
		}

		var startArg any
		if t, err := time.Parse(time.RFC3339, m.StartTime); err == nil {
			startArg = t.UTC()
		}

		var inserted bool
		err := s.db.QueryRowContext(ctx, query,
			m.ID, MatchName(m), m.League, predicted, actualArg,
			m.Prediction.Confidence, string(m.Prediction.BetType),
			m.Odds.P1Win, m.Odds.P2Win, correctArg,
			startArg, finishArg,
		).Scan(&inserted)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", m.ID, err))
			continue
		}

		if inserted {
			result.Saved++
		} else {
			result.Updated++
		}
	}

	return result
}

// Stats aggregates accuracy for the period. ROI assumes a flat one-unit stake
// on the predicted side at its saved odds.
func (s *PostgresStorage) Stats(ctx context.Context, period string) (models.StatsResponse, error) {
	resp := models.StatsResponse{
		Period:    period,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	where, args := periodFilter(period)

	totals := fmt.Sprintf(`
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE is_correct),
		COUNT(*) FILTER (WHERE is_correct = FALSE),
		COUNT(*) FILTER (WHERE is_correct IS NULL),
		COALESCE(AVG(CASE WHEN match_name LIKE predicted_winner || ' vs %%' THEN p1_odds ELSE p2_odds END)
			FILTER (WHERE is_correct IS NOT NULL), 0),
		COUNT(*) FILTER (WHERE bet_type = 'strong'),
		COUNT(*) FILTER (WHERE bet_type = 'medium'),
		COUNT(*) FILTER (WHERE bet_type = 'risky')
	FROM predictions %s`, where)

	err := s.db.QueryRowContext(ctx, totals, args...).Scan(
		&resp.Total, &resp.Correct, &resp.Incorrect, &resp.Pending,
		&resp.AvgOdds, &resp.StrongCount, &resp.MediumCount, &resp.RiskyCount,
	)
	if err != nil {
		return resp, fmt.Errorf("failed to query totals: %w", err)
	}

	decided := resp.Correct + resp.Incorrect
	if decided > 0 {
		resp.WinRate = round1(float64(resp.Correct) / float64(decided) * 100)
		resp.ROI = round1((resp.AvgOdds*resp.WinRate/100 - 1) * 100)
	}
	resp.AvgOdds = round2(resp.AvgOdds)

	streak, err := s.currentStreak(ctx)
	if err != nil {
		return resp, err
	}
	resp.Streak = streak

	resp.ByLeague, err = s.leagueStats(ctx, where, args)
	if err != nil {
		return resp, err
	}
	resp.Daily, err = s.dailyStats(ctx, where, args)
	if err != nil {
		return resp, err
	}
	return resp, nil
}

// currentStreak counts consecutive identical outcomes from the most recent
// finished prediction backwards. Positive for wins, negative for losses.
func (s *PostgresStorage) currentStreak(ctx context.Context) (int, error) {
	query := `
	SELECT is_correct FROM predictions
	WHERE is_correct IS NOT NULL
	ORDER BY updated_at DESC
	LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, streakWindow)
	if err != nil {
		return 0, fmt.Errorf("failed to query streak: %w", err)
	}
	defer rows.Close()

	var outcomes []bool
	for rows.Next() {
		var correct bool
		if err := rows.Scan(&correct); err != nil {
			return 0, err
		}
		outcomes = append(outcomes, correct)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return Streak(outcomes), nil
}

func (s *PostgresStorage) leagueStats(ctx context.Context, where string, args []any) ([]models.LeagueStat, error) {
	query := fmt.Sprintf(`
	SELECT league, COUNT(*), COUNT(*) FILTER (WHERE is_correct)
	FROM predictions %s
	GROUP BY league
	ORDER BY COUNT(*) DESC
	`, andClause(where, "is_correct IS NOT NULL"))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query league stats: %w", err)
	}
	defer rows.Close()

	var stats []models.LeagueStat
	for rows.Next() {
		var st models.LeagueStat
		if err := rows.Scan(&st.League, &st.Total, &st.Correct); err != nil {
			return nil, err
		}
		if st.Total > 0 {
			st.WinRate = round1(float64(st.Correct) / float64(st.Total) * 100)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func (s *PostgresStorage) dailyStats(ctx context.Context, where string, args []any) ([]models.DailyStat, error) {
	query := fmt.Sprintf(`
	SELECT TO_CHAR(created_at, 'YYYY-MM-DD'), COUNT(*), COUNT(*) FILTER (WHERE is_correct)
	FROM predictions %s
	GROUP BY 1
	ORDER BY 1 DESC
	LIMIT 14
	`, andClause(where, "is_correct IS NOT NULL"))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []models.DailyStat
	for rows.Next() {
		var st models.DailyStat
		if err := rows.Scan(&st.Date, &st.Total, &st.Correct); err != nil {
			return nil, err
		}
		if st.Total > 0 {
			st.WinRate = round1(float64(st.Correct) / float64(st.Total) * 100)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// Close closes the database connection.
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

// periodFilter maps a period name to a WHERE clause over created_at.
// Unknown periods behave like "all".
func periodFilter(period string) (string, []any) {
	var since time.Time
	now := time.Now().UTC()
	switch period {
	case "today":
		since = now.Truncate(24 * time.Hour)
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, -1, 0)
	default:
		return "", nil
	}
	return "WHERE created_at >= $1", []any{since}
}

func andClause(where, cond string) string {
	if where == "" {
		return "WHERE " + cond
	}
	return where + " AND " + cond
}

// MatchName renders the canonical "A vs B" row label.
func MatchName(m models.Match) string {
	return m.Player1.Name + " vs " + m.Player2.Name
}

// PredictedName resolves the predicted winner side to a player name.
func PredictedName(m models.Match) string {
	if m.Prediction != nil && m.Prediction.Winner == "p2" {
		return m.Player2.Name
	}
	return m.Player1.Name
}

// ActualWinner returns the winner name of a finished match with a score.
// The bool is false while the match has no recorded outcome.
func ActualWinner(m models.Match) (string, bool) {
	if m.Status != models.StatusFinished || m.Score == nil {
		return "", false
	}
	switch {
	case m.Score.P1 > m.Score.P2:
		return m.Player1.Name, true
	case m.Score.P2 > m.Score.P1:
		return m.Player2.Name, true
	}
	return "", true
}

// Streak counts the run of identical outcomes at the head of the list.
func Streak(outcomes []bool) int {
	if len(outcomes) == 0 {
		return 0
	}
	run := 0
	for _, correct := range outcomes {
		if correct != outcomes[0] {
			break
		}
		run++
	}
	if !outcomes[0] {
		return -run
	}
	return run
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
