package storage

import "review-analytics/models"

// TableWriter is the interface any mart backend must satisfy.
type TableWriter interface {
	WriteAppKpis(rows []models.AppKPI) error
	WriteDailyMetrics(rows []models.DailyMetric) error
	WriteSentimentFlags(rows []models.SentimentFlag) error
	RecordRun(s models.RunSummary) error
	Close() error
}
