package services

import (
	"math"
	"sort"

	"review-analytics/models"
)

// appAgg accumulates KPI inputs for a single appId.
type appAgg struct {
	numReviews int
	rated      int
	scoreSum   float64
	lowRated   int
	firstDate  string
	lastDate   string
}

// KpiAggregator groups canonical reviews by appId and computes per-app
// summary statistics. Every review counts toward its group, duplicates
// included; rating-derived stats use present ratings only. Memory grows
// with the number of distinct apps, not with the number of reviews.
type KpiAggregator struct {
	aggs map[string]*appAgg
}

// NewKpiAggregator returns an empty aggregator.
func NewKpiAggregator() *KpiAggregator {
	return &KpiAggregator{aggs: make(map[string]*appAgg)}
}

// Add feeds one canonical review into its appId group. Records without an
// appId cannot be grouped and are not aggregated.
func (k *KpiAggregator) Add(r models.Review) {
	if r.AppID == "" {
		return
	}

	agg := k.aggs[r.AppID]
	if agg == nil {
		agg = &appAgg{}
		k.aggs[r.AppID] = agg
	}

	agg.numReviews++

	if r.Rating > 0 {
		agg.rated++
		agg.scoreSum += float64(r.Rating)
		if r.Rating <= 2 {
			agg.lowRated++
		}
	}

	if d := dateOf(r.AtISO); d != "" {
		if agg.firstDate == "" || d < agg.firstDate {
			agg.firstDate = d
		}
		if agg.lastDate == "" || d > agg.lastDate {
			agg.lastDate = d
		}
	}
}

// Rows renders the KPI table, sorted by appId. AvgRating and LowRatingPct
// stay at zero when RatedReviews is zero; writers render that as "no data".
func (k *KpiAggregator) Rows() []models.AppKPI {
	rows := make([]models.AppKPI, 0, len(k.aggs))
	for appID, agg := range k.aggs {
		row := models.AppKPI{
			AppID:           appID,
			NumReviews:      agg.numReviews,
			RatedReviews:    agg.rated,
			FirstReviewDate: agg.firstDate,
			LastReviewDate:  agg.lastDate,
		}
		if agg.rated > 0 {
			row.AvgRating = round3(agg.scoreSum / float64(agg.rated))
			row.LowRatingPct = round3(float64(agg.lowRated) / float64(agg.rated))
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].AppID < rows[j].AppID })
	return rows
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
