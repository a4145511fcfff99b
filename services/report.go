package services

import (
	"fmt"
	"sort"
	"strings"

	"review-analytics/models"
	"review-analytics/utils"
)

// Reporter accumulates dataset statistics over the canonical review stream
// and renders the terminal summary shown after a run.
type Reporter struct {
	logger *utils.Logger
	stats  models.SummaryReport
}

// NewReporter creates a Reporter with the given logger.
func NewReporter(logger *utils.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Observe feeds one canonical review into the dataset statistics.
func (p *Reporter) Observe(r models.Review) {
	p.stats.TotalReviews++

	if r.AppID == "" {
		p.stats.MissingAppID++
	}
	if r.Rating > 0 {
		p.stats.RatedReviews++
		p.stats.RatingCounts[r.Rating-1]++
	}

	if d := dateOf(r.AtISO); d != "" {
		if p.stats.FirstDate == "" || d < p.stats.FirstDate {
			p.stats.FirstDate = d
		}
		if p.stats.LastDate == "" || d > p.stats.LastDate {
			p.stats.LastDate = d
		}
	} else {
		p.stats.MissingTimestamp++
	}
}

// ObserveFlag counts sentiment flags as the flagger produces them.
func (p *Reporter) ObserveFlag(f models.SentimentFlag) {
	if f.Inconsistent {
		p.stats.Inconsistent++
	}
}

// SetTotalApps records how many app-metadata records were processed.
func (p *Reporter) SetTotalApps(n int) { p.stats.TotalApps = n }

// Summary returns the accumulated statistics.
func (p *Reporter) Summary() models.SummaryReport { return p.stats }

// Print renders the summary report. KPI rows feed the top-apps section, and
// app titles resolve through the index when metadata is available.
func (p *Reporter) Print(kpis []models.AppKPI, daily []models.DailyMetric, titles *models.TitleIndex) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)
	s := p.stats

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 REVIEW DATASET SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Canonical reviews    : \033[1m%d\033[0m\n", s.TotalReviews)
	fmt.Printf("  With rating          : \033[1m%d\033[0m\n", s.RatedReviews)
	fmt.Printf("  Missing timestamp    : \033[1m%d\033[0m\n", s.MissingTimestamp)
	fmt.Printf("  Missing appId        : \033[1m%d\033[0m\n", s.MissingAppID)
	fmt.Printf("  App metadata records : \033[1m%d\033[0m\n", s.TotalApps)
	if s.FirstDate != "" {
		fmt.Printf("  Review dates         : %s → %s\n", s.FirstDate, s.LastDate)
	}
	fmt.Println()

	// Rating distribution
	fmt.Printf("\033[1;33m  Rating Distribution\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if s.RatedReviews == 0 {
		fmt.Printf("  No rated reviews\n")
	} else {
		for star := 1; star <= 5; star++ {
			count := s.RatingCounts[star-1]
			pct := float64(count) / float64(s.RatedReviews) * 100
			bar := strings.Repeat("█", int(pct/2))
			fmt.Printf("  %d★ %6d (%5.1f%%) %s\n", star, count, pct, bar)
		}
	}
	fmt.Println()

	// Top apps by review count
	fmt.Printf("\033[1;33m  Top Apps by Review Count\033[0m\n")
	fmt.Printf("  %s\n", thin)
	top := make([]models.AppKPI, len(kpis))
	copy(top, kpis)
	sort.Slice(top, func(i, j int) bool { return top[i].NumReviews > top[j].NumReviews })
	if len(top) > 5 {
		top = top[:5]
	}
	if len(top) == 0 {
		fmt.Printf("  No reviews aggregated\n")
	}
	for i, row := range top {
		name := row.AppID
		if titles != nil {
			if title, ok := titles.Get(row.AppID); ok && title != "" {
				name = title
			}
		}
		avg := "no rating"
		if row.RatedReviews > 0 {
			avg = fmt.Sprintf("%.2f ★", row.AvgRating)
		}
		fmt.Printf("  \033[1m%d.\033[0m %-40s %6d reviews  \033[1;32m%s\033[0m\n",
			i+1, truncate(name, 38), row.NumReviews, avg)
	}
	fmt.Println()

	// Busiest days
	fmt.Printf("\033[1;33m  Busiest Days\033[0m\n")
	fmt.Printf("  %s\n", thin)
	days := make([]models.DailyMetric, len(daily))
	copy(days, daily)
	sort.Slice(days, func(i, j int) bool { return days[i].NumReviews > days[j].NumReviews })
	if len(days) > 3 {
		days = days[:3]
	}
	if len(days) == 0 {
		fmt.Printf("  No dated reviews\n")
	}
	for _, d := range days {
		fmt.Printf("  %s  %6d reviews\n", d.Date, d.NumReviews)
	}
	fmt.Println()

	// Sentiment consistency
	fmt.Printf("\033[1;33m  Sentiment Consistency\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Inconsistent reviews : \033[1;31m%d\033[0m\n", s.Inconsistent)

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
