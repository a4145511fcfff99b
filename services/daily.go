package services

import (
	"sort"

	"review-analytics/models"
)

// dayAgg accumulates metrics for a single calendar date.
type dayAgg struct {
	numReviews int
	rated      int
	scoreSum   float64
}

// DailyAggregator groups canonical reviews by UTC calendar date. Reviews
// without a timestamp are excluded here entirely; they still count in the
// KPI table.
type DailyAggregator struct {
	days map[string]*dayAgg
}

// NewDailyAggregator returns an empty aggregator.
func NewDailyAggregator() *DailyAggregator {
	return &DailyAggregator{days: make(map[string]*dayAgg)}
}

// Add feeds one canonical review into its date group, if it has one.
func (d *DailyAggregator) Add(r models.Review) {
	day := dateOf(r.AtISO)
	if day == "" {
		return
	}

	agg := d.days[day]
	if agg == nil {
		agg = &dayAgg{}
		d.days[day] = agg
	}

	agg.numReviews++
	if r.Rating > 0 {
		agg.rated++
		agg.scoreSum += float64(r.Rating)
	}
}

// Rows renders the daily metrics table, sorted by date.
func (d *DailyAggregator) Rows() []models.DailyMetric {
	rows := make([]models.DailyMetric, 0, len(d.days))
	for day, agg := range d.days {
		row := models.DailyMetric{
			Date:         day,
			NumReviews:   agg.numReviews,
			RatedReviews: agg.rated,
		}
		if agg.rated > 0 {
			row.AvgRating = round3(agg.scoreSum / float64(agg.rated))
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

// dateOf extracts the YYYY-MM-DD part of an ISO timestamp, "" when the value
// is absent or not date-shaped.
func dateOf(iso string) string {
	if len(iso) >= 10 && iso[4] == '-' && iso[7] == '-' {
		return iso[:10]
	}
	return ""
}
