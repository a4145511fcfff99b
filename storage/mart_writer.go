package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"review-analytics/models"
	"review-analytics/utils"
)

// Supported mart drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// MartWriter persists the output tables to a relational mart. Every write is
// a full refresh: the table is cleared and re-inserted so reruns converge on
// the same state.
type MartWriter struct {
	db     *sql.DB
	driver string
}

// NewMartWriter opens the mart database for the given driver, waits for it to
// become reachable, and runs schema migrations.
func NewMartWriter(driver, dsn string, retries int, logger *utils.Logger) (*MartWriter, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("mart: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("mart: open: %w", err)
	}

	if err := utils.Retry(logger, "mart ping", retries, 2*time.Second, db.Ping); err != nil {
		_ = db.Close()
		return nil, err
	}

	mw := &MartWriter{db: db, driver: driver}
	if err := mw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mart: migrate: %w", err)
	}

	return mw, nil
}

func (m *MartWriter) migrate() error {
	ddl := `
		CREATE TABLE IF NOT EXISTS app_kpis (
			id                SERIAL PRIMARY KEY,
			app_id            TEXT    UNIQUE NOT NULL,
			num_reviews       INTEGER NOT NULL,
			rated_reviews     INTEGER NOT NULL,
			avg_rating        NUMERIC(4,3),
			low_rating_pct    NUMERIC(4,3),
			first_review_date TEXT,
			last_review_date  TEXT
		);

		CREATE TABLE IF NOT EXISTS daily_metrics (
			id            SERIAL PRIMARY KEY,
			date          TEXT    UNIQUE NOT NULL,
			num_reviews   INTEGER NOT NULL,
			rated_reviews INTEGER NOT NULL,
			avg_rating    NUMERIC(4,3)
		);

		CREATE TABLE IF NOT EXISTS sentiment_flags (
			id           SERIAL PRIMARY KEY,
			app_id       TEXT    NOT NULL,
			review_id    TEXT    NOT NULL DEFAULT '',
			rating       INTEGER NOT NULL,
			tag          VARCHAR(10) NOT NULL,
			inconsistent BOOLEAN NOT NULL
		);

		CREATE TABLE IF NOT EXISTS pipeline_runs (
			id                SERIAL PRIMARY KEY,
			run_id            TEXT        UNIQUE NOT NULL,
			started_at        TIMESTAMPTZ NOT NULL,
			finished_at       TIMESTAMPTZ NOT NULL,
			apps_processed    INTEGER     NOT NULL,
			reviews_processed INTEGER     NOT NULL,
			skipped_lines     INTEGER     NOT NULL,
			flagged_reviews   INTEGER     NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_app_kpis_num_reviews   ON app_kpis(num_reviews);
		CREATE INDEX IF NOT EXISTS idx_daily_metrics_date     ON daily_metrics(date);
		CREATE INDEX IF NOT EXISTS idx_sentiment_flags_app_id ON sentiment_flags(app_id);
		CREATE INDEX IF NOT EXISTS idx_sentiment_flags_flag   ON sentiment_flags(inconsistent);
	`
	if m.driver == DriverSQLite {
		ddl = strings.NewReplacer(
			"SERIAL PRIMARY KEY", "INTEGER PRIMARY KEY AUTOINCREMENT",
			"NUMERIC(4,3)", "REAL",
			"TIMESTAMPTZ", "TEXT",
			"VARCHAR(10)", "TEXT",
		).Replace(ddl)
	}

	_, err := m.db.Exec(ddl)
	return err
}

// WriteAppKpis refreshes the app_kpis table with the given rows.
func (m *MartWriter) WriteAppKpis(rows []models.AppKPI) error {
	cols := []string{"app_id", "num_reviews", "rated_reviews", "avg_rating", "low_rating_pct", "first_review_date", "last_review_date"}
	values := make([][]any, 0, len(rows))
	for _, k := range rows {
		values = append(values, []any{
			k.AppID,
			k.NumReviews,
			k.RatedReviews,
			nullFloat(k.AvgRating, k.RatedReviews > 0),
			nullFloat(k.LowRatingPct, k.RatedReviews > 0),
			nullString(k.FirstReviewDate),
			nullString(k.LastReviewDate),
		})
	}
	return m.refresh("app_kpis", cols, values)
}

// WriteDailyMetrics refreshes the daily_metrics table with the given rows.
func (m *MartWriter) WriteDailyMetrics(rows []models.DailyMetric) error {
	cols := []string{"date", "num_reviews", "rated_reviews", "avg_rating"}
	values := make([][]any, 0, len(rows))
	for _, d := range rows {
		values = append(values, []any{
			d.Date,
			d.NumReviews,
			d.RatedReviews,
			nullFloat(d.AvgRating, d.RatedReviews > 0),
		})
	}
	return m.refresh("daily_metrics", cols, values)
}

// WriteSentimentFlags refreshes the sentiment_flags table with the given
// rows. Duplicate reviews stay duplicated here, matching the input data.
func (m *MartWriter) WriteSentimentFlags(rows []models.SentimentFlag) error {
	cols := []string{"app_id", "review_id", "rating", "tag", "inconsistent"}
	values := make([][]any, 0, len(rows))
	for _, f := range rows {
		values = append(values, []any{f.AppID, f.ReviewID, f.Rating, f.Tag, f.Inconsistent})
	}
	return m.refresh("sentiment_flags", cols, values)
}

// RecordRun appends one row to the pipeline_runs history table.
func (m *MartWriter) RecordRun(s models.RunSummary) error {
	cols := "run_id, started_at, finished_at, apps_processed, reviews_processed, skipped_lines, flagged_reviews"
	query := fmt.Sprintf("INSERT INTO pipeline_runs (%s) VALUES %s", cols, m.placeholders(1, 7))

	_, err := m.db.Exec(query,
		s.RunID,
		s.StartedAt.UTC().Format(time.RFC3339),
		s.FinishedAt.UTC().Format(time.RFC3339),
		s.AppsProcessed,
		s.ReviewsProcessed,
		s.SkippedLines,
		s.FlaggedReviews,
	)
	if err != nil {
		return fmt.Errorf("mart: record run: %w", err)
	}
	return nil
}

// FetchAppKpis retrieves the stored KPI table ordered by app id.
func (m *MartWriter) FetchAppKpis() ([]models.AppKPI, error) {
	rows, err := m.db.Query(`
		SELECT app_id, num_reviews, rated_reviews, avg_rating, low_rating_pct, first_review_date, last_review_date
		FROM app_kpis
		ORDER BY app_id
	`)
	if err != nil {
		return nil, fmt.Errorf("mart: fetch app kpis: %w", err)
	}
	defer rows.Close()

	var kpis []models.AppKPI
	for rows.Next() {
		var (
			k        models.AppKPI
			avg, low sql.NullFloat64
			fd, ld   sql.NullString
		)
		if err := rows.Scan(&k.AppID, &k.NumReviews, &k.RatedReviews, &avg, &low, &fd, &ld); err != nil {
			return nil, fmt.Errorf("mart: scan row: %w", err)
		}
		k.AvgRating = avg.Float64
		k.LowRatingPct = low.Float64
		k.FirstReviewDate = fd.String
		k.LastReviewDate = ld.String
		kpis = append(kpis, k)
	}
	return kpis, rows.Err()
}

func (m *MartWriter) Close() error {
	return m.db.Close()
}

// refresh clears a table and batch-inserts its replacement rows.
func (m *MartWriter) refresh(table string, cols []string, rows [][]any) error {
	if _, err := m.db.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("mart: clear %s: %w", table, err)
	}

	const batchSize = 50
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := m.insertBatch(table, cols, rows[i:end]); err != nil {
			return fmt.Errorf("mart: insert %s: %w", table, err)
		}
	}
	return nil
}

func (m *MartWriter) insertBatch(table string, cols []string, rows [][]any) error {
	valueStrings := make([]string, 0, len(rows))
	valueArgs := make([]any, 0, len(rows)*len(cols))

	for idx, row := range rows {
		valueStrings = append(valueStrings, m.placeholders(idx*len(cols)+1, len(cols)))
		valueArgs = append(valueArgs, row...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(cols, ", "), strings.Join(valueStrings, ","))

	_, err := m.db.Exec(query, valueArgs...)
	return err
}

// placeholders renders one parenthesized placeholder group in the dialect of
// the active driver, numbering from start for postgres.
func (m *MartWriter) placeholders(start, n int) string {
	ph := make([]string, n)
	for i := range ph {
		if m.driver == DriverPostgres {
			ph[i] = fmt.Sprintf("$%d", start+i)
		} else {
			ph[i] = "?"
		}
	}
	return "(" + strings.Join(ph, ",") + ")"
}

func nullFloat(v float64, present bool) any {
	if !present {
		return nil
	}
	return v
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
