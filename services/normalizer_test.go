package services

import (
	"testing"

	"review-analytics/source"
)

func TestReviewNormalizerAliases(t *testing.T) {
	n := NewReviewNormalizer()

	row := source.Row{
		"review_id":  "r1",
		"score":      float64(4),
		"body":       "nice app",
		"created_at": "2024-01-01 10:00:00",
		"app_id":     "com.example.app",
	}

	got := n.Normalize(row)

	if got["reviewId"] != "r1" {
		t.Errorf("reviewId: got %v, want r1", got["reviewId"])
	}
	if got["rating"] != float64(4) {
		t.Errorf("rating: got %v, want 4", got["rating"])
	}
	if got["text"] != "nice app" {
		t.Errorf("text: got %v, want nice app", got["text"])
	}
	if got["at"] != "2024-01-01 10:00:00" {
		t.Errorf("at: got %v", got["at"])
	}
	if got["appId"] != "com.example.app" {
		t.Errorf("appId: got %v", got["appId"])
	}
}

func TestNormalizerCaseInsensitive(t *testing.T) {
	n := NewReviewNormalizer()

	row := source.Row{
		"SCORE":     "5",
		"Review_ID": "r9",
		"Content":   "hey",
	}

	got := n.Normalize(row)
	if got["rating"] != "5" {
		t.Errorf("rating: got %v, want 5", got["rating"])
	}
	if got["reviewId"] != "r9" {
		t.Errorf("reviewId: got %v, want r9", got["reviewId"])
	}
	if got["text"] != "hey" {
		t.Errorf("text: got %v, want hey", got["text"])
	}
}

func TestNormalizerFirstAliasWins(t *testing.T) {
	n := NewReviewNormalizer()

	// content is listed before text for the canonical text field.
	row := source.Row{"content": "a", "text": "b"}
	got := n.Normalize(row)
	if got["text"] != "a" {
		t.Errorf("text: got %v, want a", got["text"])
	}
}

func TestNormalizerSkipsNilValues(t *testing.T) {
	n := NewReviewNormalizer()

	row := source.Row{"score": nil, "rating": float64(2)}
	got := n.Normalize(row)
	if got["rating"] != float64(2) {
		t.Errorf("rating: got %v, want 2 (nil alias skipped)", got["rating"])
	}
}

func TestNormalizerUnmatchedFieldsAbsent(t *testing.T) {
	n := NewReviewNormalizer()

	got := n.Normalize(source.Row{"mystery_column": "x"})
	if len(got) != 0 {
		t.Errorf("expected empty canonical row, got %v", got)
	}

	got = n.Normalize(source.Row{})
	if len(got) != 0 {
		t.Errorf("expected empty canonical row for empty input, got %v", got)
	}
}

func TestAppNormalizerAliases(t *testing.T) {
	n := NewAppNormalizer()

	row := source.Row{
		"appId":        "com.example.app",
		"app_name":     "Example",
		"description":  "<p>Hi</p>",
		"min_installs": float64(1000),
		"release_date": "Jan 5, 2024",
		"last_updated": "Feb 1, 2024",
	}

	got := n.Normalize(row)
	if got["appId"] != "com.example.app" {
		t.Errorf("appId: got %v", got["appId"])
	}
	if got["title"] != "Example" {
		t.Errorf("title: got %v, want Example", got["title"])
	}
	if got["descriptionHTML"] != "<p>Hi</p>" {
		t.Errorf("descriptionHTML: got %v", got["descriptionHTML"])
	}
	if got["minInstalls"] != float64(1000) {
		t.Errorf("minInstalls: got %v", got["minInstalls"])
	}
	if got["released"] != "Jan 5, 2024" {
		t.Errorf("released: got %v", got["released"])
	}
	if got["lastUpdatedOn"] != "Feb 1, 2024" {
		t.Errorf("lastUpdatedOn: got %v", got["lastUpdatedOn"])
	}
}
