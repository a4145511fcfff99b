package models

import "time"

// AppKPI is one row of the per-app KPI table. RatedReviews is the denominator
// behind AvgRating and LowRatingPct; when it is zero both values are
// undefined and render as the "no data" marker (empty CSV cell, SQL NULL).
type AppKPI struct {
	AppID           string
	NumReviews      int
	RatedReviews    int
	AvgRating       float64
	LowRatingPct    float64
	FirstReviewDate string
	LastReviewDate  string
}

// DailyMetric is one row of the per-date metrics table. Only reviews with a
// present timestamp contribute here.
type DailyMetric struct {
	Date         string
	NumReviews   int
	RatedReviews int
	AvgRating    float64
}

// SentimentFlag is one row of the sentiment-consistency table. Every review
// with a present rating yields a row; Inconsistent marks the mismatches.
type SentimentFlag struct {
	AppID        string
	ReviewID     string
	Rating       int
	Tag          string
	Inconsistent bool
}

// RunSummary describes one full pipeline run.
type RunSummary struct {
	RunID            string
	StartedAt        time.Time
	FinishedAt       time.Time
	AppsProcessed    int
	ReviewsProcessed int
	SkippedLines     int
	FlaggedReviews   int
}

// SummaryReport holds the dataset statistics shown by the terminal report.
type SummaryReport struct {
	TotalReviews     int
	RatedReviews     int
	MissingTimestamp int
	MissingAppID     int
	RatingCounts     [5]int // index 0 holds one-star counts
	FirstDate        string
	LastDate         string
	Inconsistent     int
	TotalApps        int
}
