package storage

import (
	"path/filepath"
	"testing"
	"time"

	"review-analytics/models"
	"review-analytics/utils"
)

func newTestMart(t *testing.T) *MartWriter {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mart.db")
	mw, err := NewMartWriter(DriverSQLite, path, 1, utils.NewLogger())
	if err != nil {
		t.Fatalf("NewMartWriter: %v", err)
	}
	t.Cleanup(func() { _ = mw.Close() })
	return mw
}

func countRows(t *testing.T, mw *MartWriter, table string) int {
	t.Helper()

	var n int
	if err := mw.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestMartWriterUnsupportedDriver(t *testing.T) {
	if _, err := NewMartWriter("mysql", "", 1, utils.NewLogger()); err == nil {
		t.Error("expected an error for an unsupported driver")
	}
}

func TestMartWriterAppKpisRoundTrip(t *testing.T) {
	mw := newTestMart(t)

	rows := []models.AppKPI{
		{AppID: "com.example.app", NumReviews: 3, RatedReviews: 2, AvgRating: 3, LowRatingPct: 0.5, FirstReviewDate: "2024-01-01", LastReviewDate: "2024-03-10"},
		{AppID: "com.example.other", NumReviews: 1},
	}
	if err := mw.WriteAppKpis(rows); err != nil {
		t.Fatalf("WriteAppKpis: %v", err)
	}

	got, err := mw.FetchAppKpis()
	if err != nil {
		t.Fatalf("FetchAppKpis: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("kpis: got %d, want 2", len(got))
	}
	if got[0].AppID != "com.example.app" || got[0].NumReviews != 3 || got[0].AvgRating != 3 || got[0].LowRatingPct != 0.5 {
		t.Errorf("first kpi: got %+v", got[0])
	}
	if got[0].FirstReviewDate != "2024-01-01" || got[0].LastReviewDate != "2024-03-10" {
		t.Errorf("date span: got %q..%q", got[0].FirstReviewDate, got[0].LastReviewDate)
	}
	if got[1].AvgRating != 0 || got[1].FirstReviewDate != "" {
		t.Errorf("null columns should come back as zero values, got %+v", got[1])
	}
}

func TestMartWriterFullRefresh(t *testing.T) {
	mw := newTestMart(t)

	first := []models.AppKPI{
		{AppID: "a", NumReviews: 1, RatedReviews: 1, AvgRating: 5},
		{AppID: "b", NumReviews: 1, RatedReviews: 1, AvgRating: 4},
	}
	if err := mw.WriteAppKpis(first); err != nil {
		t.Fatalf("WriteAppKpis: %v", err)
	}

	second := []models.AppKPI{{AppID: "c", NumReviews: 2, RatedReviews: 2, AvgRating: 3}}
	if err := mw.WriteAppKpis(second); err != nil {
		t.Fatalf("WriteAppKpis (rerun): %v", err)
	}

	got, err := mw.FetchAppKpis()
	if err != nil {
		t.Fatalf("FetchAppKpis: %v", err)
	}
	if len(got) != 1 || got[0].AppID != "c" {
		t.Errorf("rerun should replace previous rows, got %+v", got)
	}
}

func TestMartWriterSentimentDuplicatesKept(t *testing.T) {
	mw := newTestMart(t)

	flag := models.SentimentFlag{AppID: "a", ReviewID: "r1", Rating: 5, Tag: "negative", Inconsistent: true}
	if err := mw.WriteSentimentFlags([]models.SentimentFlag{flag, flag}); err != nil {
		t.Fatalf("WriteSentimentFlags: %v", err)
	}

	if n := countRows(t, mw, "sentiment_flags"); n != 2 {
		t.Errorf("sentiment_flags rows: got %d, want 2", n)
	}
}

func TestMartWriterDailyMetrics(t *testing.T) {
	mw := newTestMart(t)

	rows := []models.DailyMetric{
		{Date: "2024-01-01", NumReviews: 2, RatedReviews: 1, AvgRating: 3},
		{Date: "2024-01-02", NumReviews: 1},
	}
	if err := mw.WriteDailyMetrics(rows); err != nil {
		t.Fatalf("WriteDailyMetrics: %v", err)
	}

	if n := countRows(t, mw, "daily_metrics"); n != 2 {
		t.Errorf("daily_metrics rows: got %d, want 2", n)
	}
}

func TestMartWriterRecordRunKeepsHistory(t *testing.T) {
	mw := newTestMart(t)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	runs := []models.RunSummary{
		{RunID: "run-1", StartedAt: now, FinishedAt: now.Add(time.Second), ReviewsProcessed: 10},
		{RunID: "run-2", StartedAt: now.Add(time.Hour), FinishedAt: now.Add(time.Hour + time.Second), ReviewsProcessed: 12},
	}
	for _, s := range runs {
		if err := mw.RecordRun(s); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	if n := countRows(t, mw, "pipeline_runs"); n != 2 {
		t.Errorf("pipeline_runs rows: got %d, want 2", n)
	}
}

func TestMartWriterLargeBatch(t *testing.T) {
	mw := newTestMart(t)

	flags := make([]models.SentimentFlag, 0, 120)
	for i := 0; i < 120; i++ {
		flags = append(flags, models.SentimentFlag{AppID: "a", ReviewID: "r", Rating: 3, Tag: "neutral"})
	}
	if err := mw.WriteSentimentFlags(flags); err != nil {
		t.Fatalf("WriteSentimentFlags: %v", err)
	}

	if n := countRows(t, mw, "sentiment_flags"); n != 120 {
		t.Errorf("sentiment_flags rows: got %d, want 120", n)
	}
}
