package storage

import (
	"strconv"

	"review-analytics/models"
)

// Column layouts for the three output tables. Metrics with no data behind
// them (an app or day with zero rated reviews, a missing date bound) render
// as empty cells rather than zeros.
var (
	appKpiHeader    = []string{"appId", "num_reviews", "avg_rating", "low_rating_pct", "first_review_date", "last_review_date"}
	dailyHeader     = []string{"date", "daily_num_reviews", "daily_avg_rating"}
	sentimentHeader = []string{"appId", "reviewId", "rating", "sentiment_tag", "inconsistent"}
)

// WriteAppKpis writes the per-app KPI table to path.
func WriteAppKpis(path string, rows []models.AppKPI) error {
	w, err := NewCSVWriter(path, appKpiHeader)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, k := range rows {
		avg, low := "", ""
		if k.RatedReviews > 0 {
			avg = formatFloat(k.AvgRating)
			low = formatFloat(k.LowRatingPct)
		}
		row := []string{k.AppID, strconv.Itoa(k.NumReviews), avg, low, k.FirstReviewDate, k.LastReviewDate}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return w.Commit()
}

// WriteDailyMetrics writes the per-date metrics table to path.
func WriteDailyMetrics(path string, rows []models.DailyMetric) error {
	w, err := NewCSVWriter(path, dailyHeader)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, d := range rows {
		avg := ""
		if d.RatedReviews > 0 {
			avg = formatFloat(d.AvgRating)
		}
		if err := w.WriteRow([]string{d.Date, strconv.Itoa(d.NumReviews), avg}); err != nil {
			return err
		}
	}
	return w.Commit()
}

// WriteSentimentFlags writes the sentiment-consistency table to path.
func WriteSentimentFlags(path string, rows []models.SentimentFlag) error {
	w, err := NewCSVWriter(path, sentimentHeader)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, f := range rows {
		row := []string{
			f.AppID,
			f.ReviewID,
			strconv.Itoa(f.Rating),
			f.Tag,
			strconv.FormatBool(f.Inconsistent),
		}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return w.Commit()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
