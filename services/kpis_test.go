package services

import (
	"testing"

	"review-analytics/models"
)

func TestKpiDuplicateRowsBothCount(t *testing.T) {
	agg := NewKpiAggregator()

	r := models.Review{AppID: "com.example.app", ReviewID: "r1", Rating: 5}
	agg.Add(r)
	agg.Add(r)

	rows := agg.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(rows))
	}
	if rows[0].NumReviews != 2 {
		t.Errorf("NumReviews: got %d, want 2", rows[0].NumReviews)
	}
	if rows[0].RatedReviews != 2 {
		t.Errorf("RatedReviews: got %d, want 2", rows[0].RatedReviews)
	}
}

func TestKpiPartialRatings(t *testing.T) {
	agg := NewKpiAggregator()

	agg.Add(models.Review{AppID: "a", Rating: 5})
	agg.Add(models.Review{AppID: "a"}) // unrated
	agg.Add(models.Review{AppID: "a", Rating: 1})

	rows := agg.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(rows))
	}
	k := rows[0]
	if k.NumReviews != 3 {
		t.Errorf("NumReviews: got %d, want 3", k.NumReviews)
	}
	if k.RatedReviews != 2 {
		t.Errorf("RatedReviews: got %d, want 2", k.RatedReviews)
	}
	if k.AvgRating != 3.0 {
		t.Errorf("AvgRating: got %v, want 3.0", k.AvgRating)
	}
	if k.LowRatingPct != 0.5 {
		t.Errorf("LowRatingPct: got %v, want 0.5", k.LowRatingPct)
	}
}

func TestKpiNoRatedReviews(t *testing.T) {
	agg := NewKpiAggregator()

	agg.Add(models.Review{AppID: "a"})
	agg.Add(models.Review{AppID: "a"})

	k := agg.Rows()[0]
	if k.NumReviews != 2 {
		t.Errorf("NumReviews: got %d, want 2", k.NumReviews)
	}
	if k.RatedReviews != 0 {
		t.Errorf("RatedReviews: got %d, want 0", k.RatedReviews)
	}
	if k.AvgRating != 0 || k.LowRatingPct != 0 {
		t.Errorf("averages should stay zero with no rated reviews, got %v/%v", k.AvgRating, k.LowRatingPct)
	}
}

func TestKpiDateRange(t *testing.T) {
	agg := NewKpiAggregator()

	agg.Add(models.Review{AppID: "a", Rating: 4, AtISO: "2024-03-10T08:00:00Z"})
	agg.Add(models.Review{AppID: "a", Rating: 2, AtISO: "2024-01-05T23:59:59Z"})
	agg.Add(models.Review{AppID: "a", Rating: 3}) // no timestamp

	k := agg.Rows()[0]
	if k.FirstReviewDate != "2024-01-05" {
		t.Errorf("FirstReviewDate: got %q, want 2024-01-05", k.FirstReviewDate)
	}
	if k.LastReviewDate != "2024-03-10" {
		t.Errorf("LastReviewDate: got %q, want 2024-03-10", k.LastReviewDate)
	}
	if k.NumReviews != 3 {
		t.Errorf("NumReviews: got %d, want 3 (missing timestamp still counts)", k.NumReviews)
	}
}

func TestKpiRoundsToThreeDecimals(t *testing.T) {
	agg := NewKpiAggregator()

	agg.Add(models.Review{AppID: "a", Rating: 5})
	agg.Add(models.Review{AppID: "a", Rating: 5})
	agg.Add(models.Review{AppID: "a", Rating: 4})

	k := agg.Rows()[0]
	if k.AvgRating != 4.667 {
		t.Errorf("AvgRating: got %v, want 4.667", k.AvgRating)
	}
	if k.LowRatingPct != 0 {
		t.Errorf("LowRatingPct: got %v, want 0", k.LowRatingPct)
	}
}

func TestKpiRowsSortedByAppID(t *testing.T) {
	agg := NewKpiAggregator()

	agg.Add(models.Review{AppID: "b", Rating: 3})
	agg.Add(models.Review{AppID: "a", Rating: 3})
	agg.Add(models.Review{AppID: "c", Rating: 3})

	rows := agg.Rows()
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(rows))
	}
	if rows[0].AppID != "a" || rows[1].AppID != "b" || rows[2].AppID != "c" {
		t.Errorf("rows not sorted: %s %s %s", rows[0].AppID, rows[1].AppID, rows[2].AppID)
	}
}

func TestKpiSkipsEmptyAppID(t *testing.T) {
	agg := NewKpiAggregator()

	agg.Add(models.Review{Rating: 5})
	agg.Add(models.Review{AppID: "a", Rating: 5})

	rows := agg.Rows()
	if len(rows) != 1 || rows[0].AppID != "a" {
		t.Errorf("rows: got %v, want single row for a", rows)
	}
}
