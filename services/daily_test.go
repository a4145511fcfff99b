package services

import (
	"testing"

	"review-analytics/models"
)

func TestDailyExcludesMissingTimestamp(t *testing.T) {
	daily := NewDailyAggregator()
	kpis := NewKpiAggregator()

	reviews := []models.Review{
		{AppID: "a", Rating: 5}, // no timestamp
		{AppID: "a", Rating: 3, AtISO: "2024-01-01T00:00:00Z"},
	}
	for _, r := range reviews {
		daily.Add(r)
		kpis.Add(r)
	}

	rows := daily.Rows()
	if len(rows) != 1 {
		t.Fatalf("daily rows: got %d, want 1", len(rows))
	}
	if rows[0].Date != "2024-01-01" {
		t.Errorf("Date: got %q, want 2024-01-01", rows[0].Date)
	}
	if rows[0].NumReviews != 1 {
		t.Errorf("NumReviews: got %d, want 1", rows[0].NumReviews)
	}
	if rows[0].AvgRating != 3.0 {
		t.Errorf("AvgRating: got %v, want 3.0", rows[0].AvgRating)
	}

	// The undated review still counts toward the app totals.
	k := kpis.Rows()[0]
	if k.NumReviews != 2 {
		t.Errorf("app NumReviews: got %d, want 2", k.NumReviews)
	}
}

func TestDailyGroupsByDate(t *testing.T) {
	daily := NewDailyAggregator()

	daily.Add(models.Review{AppID: "a", Rating: 4, AtISO: "2024-02-02T10:00:00Z"})
	daily.Add(models.Review{AppID: "b", Rating: 2, AtISO: "2024-02-02T22:00:00Z"})
	daily.Add(models.Review{AppID: "a", Rating: 5, AtISO: "2024-02-01T09:00:00Z"})

	rows := daily.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if rows[0].Date != "2024-02-01" || rows[1].Date != "2024-02-02" {
		t.Errorf("rows not sorted by date: %s, %s", rows[0].Date, rows[1].Date)
	}
	if rows[1].NumReviews != 2 {
		t.Errorf("2024-02-02 NumReviews: got %d, want 2", rows[1].NumReviews)
	}
	if rows[1].AvgRating != 3.0 {
		t.Errorf("2024-02-02 AvgRating: got %v, want 3.0", rows[1].AvgRating)
	}
}

func TestDailyUnratedDay(t *testing.T) {
	daily := NewDailyAggregator()

	daily.Add(models.Review{AppID: "a", AtISO: "2024-02-01T09:00:00Z"})

	rows := daily.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(rows))
	}
	if rows[0].NumReviews != 1 {
		t.Errorf("NumReviews: got %d, want 1", rows[0].NumReviews)
	}
	if rows[0].RatedReviews != 0 || rows[0].AvgRating != 0 {
		t.Errorf("unrated day should have zero averages, got %d/%v", rows[0].RatedReviews, rows[0].AvgRating)
	}
}

func TestDateOf(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-01T00:00:00Z", "2024-01-01"},
		{"2024-12-31T23:59:59Z", "2024-12-31"},
		{"", ""},
		{"garbage", ""},
		{"2024/01/01 10:00", ""},
	}

	for _, tt := range tests {
		got := dateOf(tt.in)
		if got != tt.want {
			t.Errorf("dateOf(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
