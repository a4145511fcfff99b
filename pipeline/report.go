package pipeline

import (
	"review-analytics/models"
	"review-analytics/storage"
)

// Report recomputes the dataset summary from the processed outputs of a
// previous run and prints it. Raw inputs are not touched.
func (p *Pipeline) Report() error {
	lex, err := p.lexicon()
	if err != nil {
		return err
	}

	titles := models.NewTitleIndex()
	apps, err := storage.ReadAppsJSON(p.cfg.Processed(appsFile))
	if err != nil {
		p.logger.Warn("[report] no processed app metadata, titles unavailable: %v", err)
	}
	for _, a := range apps {
		titles.Put(a.AppID, a.Title)
	}

	a, err := p.analyze(p.cfg.Processed(reviewsFile), lex, titles.Len())
	if err != nil {
		return err
	}

	a.reporter.Print(a.kpis, a.daily, titles)
	return nil
}
