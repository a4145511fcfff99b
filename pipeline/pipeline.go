package pipeline

import (
	"io"
	"time"

	"github.com/google/uuid"

	"review-analytics/config"
	"review-analytics/models"
	"review-analytics/services"
	"review-analytics/source"
	"review-analytics/storage"
	"review-analytics/utils"
)

// Output files inside the processed data directory.
const (
	reviewsFile   = "user_reviews_processed.jsonl"
	appsFile      = "apps_metadata_processed.json"
	appKpisFile   = "app_kpis.csv"
	dailyFile     = "daily_metrics.csv"
	sentimentFile = "inconsistent_sentiment.csv"
)

// Pipeline runs the full transform-and-aggregate batch over one raw dataset.
// Each run is a full refresh: outputs are rebuilt from scratch and replace
// their previous versions, so rerunning on the same input converges.
type Pipeline struct {
	cfg    *config.Config
	logger *utils.Logger
}

// New creates a Pipeline.
func New(cfg *config.Config, logger *utils.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, logger: logger}
}

// Run executes the batch: normalize both raw datasets, persist the canonical
// records, aggregate KPIs, and write every output table. The returned summary
// describes what the run processed.
func (p *Pipeline) Run(appsPath, reviewsPath string) (models.RunSummary, error) {
	started := time.Now().UTC()

	lex, err := p.lexicon()
	if err != nil {
		return models.RunSummary{}, err
	}

	builder := services.NewBuilder(p.logger)

	apps, err := p.transformApps(builder, appsPath)
	if err != nil {
		return models.RunSummary{}, err
	}

	titles := models.NewTitleIndex()
	for _, a := range apps {
		titles.Put(a.AppID, a.Title)
	}

	reviewsOut := p.cfg.Processed(reviewsFile)
	total, skipped, err := p.transformReviews(builder, reviewsPath, reviewsOut)
	if err != nil {
		return models.RunSummary{}, err
	}

	a, err := p.analyze(reviewsOut, lex, titles.Len())
	if err != nil {
		return models.RunSummary{}, err
	}

	if err := storage.WriteAppKpis(p.cfg.Processed(appKpisFile), a.kpis); err != nil {
		return models.RunSummary{}, err
	}
	if err := storage.WriteDailyMetrics(p.cfg.Processed(dailyFile), a.daily); err != nil {
		return models.RunSummary{}, err
	}
	if err := storage.WriteSentimentFlags(p.cfg.Processed(sentimentFile), a.flags); err != nil {
		return models.RunSummary{}, err
	}
	p.logger.Info("[pipeline] output tables written to %s", p.cfg.ProcessedDataDir)

	summary := models.RunSummary{
		RunID:            uuid.New().String(),
		StartedAt:        started,
		FinishedAt:       time.Now().UTC(),
		AppsProcessed:    len(apps),
		ReviewsProcessed: total,
		SkippedLines:     skipped,
		FlaggedReviews:   a.reporter.Summary().Inconsistent,
	}

	kpis := a.kpis
	if p.cfg.DBDriver != "" {
		stored, err := p.writeMart(a, summary)
		if err != nil {
			return models.RunSummary{}, err
		}
		if stored != nil {
			kpis = stored
		}
	}

	a.reporter.Print(kpis, a.daily, titles)
	p.logger.Info("[pipeline] run %s done in %s", summary.RunID, time.Since(started).Round(time.Millisecond))
	return summary, nil
}

// transformApps normalizes the raw app metadata and persists the canonical
// JSON document. Records without an app id cannot be joined to anything and
// are dropped.
func (p *Pipeline) transformApps(b *services.Builder, path string) ([]models.App, error) {
	reader, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var apps []models.App
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		app := b.App(row)
		if app.AppID == "" {
			p.logger.Warn("[pipeline] app record without an appId, skipping")
			continue
		}
		apps = append(apps, app)
	}

	out := p.cfg.Processed(appsFile)
	if err := storage.WriteAppsJSON(out, apps); err != nil {
		return nil, err
	}
	p.logger.Info("[pipeline] %d app records → %s", len(apps), out)
	return apps, nil
}

// transformReviews normalizes the raw review feed into the canonical JSONL
// dataset. Returns how many reviews were written and how many raw lines were
// skipped as unparseable.
func (p *Pipeline) transformReviews(b *services.Builder, path, outPath string) (int, int, error) {
	reader, err := source.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer reader.Close()

	w, err := storage.NewReviewJSONLWriter(outPath)
	if err != nil {
		return 0, 0, err
	}
	defer w.Close()

	total := 0
	for {
		if p.cfg.MaxReviews > 0 && total >= p.cfg.MaxReviews {
			p.logger.Warn("[pipeline] review cap %d reached, ignoring the rest of %s", p.cfg.MaxReviews, path)
			break
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, err
		}

		if err := w.Append(b.Review(row)); err != nil {
			return 0, 0, err
		}
		total++
	}

	skipped := 0
	if jr, ok := reader.(*source.JSONLReader); ok {
		skipped = jr.Skipped()
	}
	if skipped > 0 {
		p.logger.Warn("[pipeline] %d unparseable lines skipped in %s", skipped, path)
	}

	if err := w.Commit(); err != nil {
		return 0, 0, err
	}
	p.logger.Info("[pipeline] %d reviews → %s", total, outPath)
	return total, skipped, nil
}

// analysis bundles everything one aggregation pass produces.
type analysis struct {
	kpis     []models.AppKPI
	daily    []models.DailyMetric
	flags    []models.SentimentFlag
	reporter *services.Reporter
}

// analyze streams the canonical review dataset once, feeding every aggregator
// in lockstep.
func (p *Pipeline) analyze(reviewsPath string, lex services.Lexicon, totalApps int) (*analysis, error) {
	kpiAgg := services.NewKpiAggregator()
	dailyAgg := services.NewDailyAggregator()
	flagger := services.NewFlagger(lex)
	reporter := services.NewReporter(p.logger)
	reporter.SetTotalApps(totalApps)

	var flags []models.SentimentFlag
	err := storage.EachReview(reviewsPath, func(r models.Review) error {
		kpiAgg.Add(r)
		dailyAgg.Add(r)
		reporter.Observe(r)
		if f, ok := flagger.Flag(r); ok {
			reporter.ObserveFlag(f)
			flags = append(flags, f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &analysis{
		kpis:     kpiAgg.Rows(),
		daily:    dailyAgg.Rows(),
		flags:    flags,
		reporter: reporter,
	}, nil
}

// writeMart refreshes the relational mart and returns the KPI rows read back
// from it, or nil when the read-back failed and the in-memory rows should be
// used instead.
func (p *Pipeline) writeMart(a *analysis, summary models.RunSummary) ([]models.AppKPI, error) {
	mart, err := storage.NewMartWriter(p.cfg.DBDriver, p.martDSN(), p.cfg.MaxRetries, p.logger)
	if err != nil {
		return nil, err
	}
	defer mart.Close()

	if err := mart.WriteAppKpis(a.kpis); err != nil {
		return nil, err
	}
	if err := mart.WriteDailyMetrics(a.daily); err != nil {
		return nil, err
	}
	if err := mart.WriteSentimentFlags(a.flags); err != nil {
		return nil, err
	}
	if err := mart.RecordRun(summary); err != nil {
		return nil, err
	}
	p.logger.Info("[pipeline] mart refreshed (%s)", p.cfg.DBDriver)

	stored, err := mart.FetchAppKpis()
	if err != nil {
		p.logger.Error("[pipeline] mart read-back failed, reporting from memory: %v", err)
		return nil, nil
	}
	return stored, nil
}

func (p *Pipeline) lexicon() (services.Lexicon, error) {
	if p.cfg.SentimentLexicon == "" {
		return services.DefaultLexicon(), nil
	}

	lex, err := services.LoadLexicon(p.cfg.SentimentLexicon)
	if err != nil {
		return services.Lexicon{}, err
	}
	p.logger.Info("[pipeline] sentiment lexicon loaded from %s", p.cfg.SentimentLexicon)
	return lex, nil
}

func (p *Pipeline) martDSN() string {
	if p.cfg.DBDriver == storage.DriverSQLite {
		return p.cfg.SQLitePath
	}
	return p.cfg.DSN()
}
