package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"review-analytics/models"
)

// Sentiment tags attached to classified reviews.
const (
	TagNegative = "negative"
	TagPositive = "positive"
	TagNeutral  = "neutral"
)

// Lexicon carries the keyword sets behind the sentiment heuristic. Terms are
// matched as lower-case substrings of the review text.
type Lexicon struct {
	Negative []string `yaml:"negative"`
	Positive []string `yaml:"positive"`
}

// DefaultLexicon returns the built-in term sets.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Negative: []string{
			"bad", "terrible", "horrible", "awful", "worst", "scam", "refund",
			"bug", "broken", "crash", "doesn't work", "doesnt work", "waste",
			"useless",
		},
		Positive: []string{
			"great", "excellent", "amazing", "love", "awesome", "fantastic",
			"perfect", "very good", "works well", "helpful",
		},
	}
}

// LoadLexicon reads a YAML lexicon file with `negative:` and `positive:`
// term lists. A missing or empty list keeps the built-in terms for it.
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("sentiment: read lexicon: %w", err)
	}

	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("sentiment: parse lexicon: %w", err)
	}

	def := DefaultLexicon()
	if len(lex.Negative) == 0 {
		lex.Negative = def.Negative
	}
	if len(lex.Positive) == 0 {
		lex.Positive = def.Positive
	}
	return lex, nil
}

// Flagger classifies review text against a lexicon and flags reviews whose
// rating contradicts the text sentiment.
type Flagger struct {
	lex Lexicon
}

// NewFlagger creates a Flagger using the given term sets.
func NewFlagger(lex Lexicon) *Flagger {
	return &Flagger{lex: lex}
}

// Flag classifies one canonical review. Reviews without a rating are never
// flagged and return false. Every eligible review yields a row, consistent
// ones included; consumers filter on Inconsistent.
func (f *Flagger) Flag(r models.Review) (models.SentimentFlag, bool) {
	if r.Rating == 0 {
		return models.SentimentFlag{}, false
	}

	tag := f.classify(r.Text)
	return models.SentimentFlag{
		AppID:    r.AppID,
		ReviewID: r.ReviewID,
		Rating:   r.Rating,
		Tag:      tag,
		Inconsistent: (tag == TagNegative && r.Rating >= 4) ||
			(tag == TagPositive && r.Rating <= 2),
	}, true
}

// classify tags text as negative or positive only when exactly one term set
// matches; everything else, the empty text included, is neutral.
func (f *Flagger) classify(text string) string {
	t := strings.ToLower(text)
	neg := containsAny(t, f.lex.Negative)
	pos := containsAny(t, f.lex.Positive)

	switch {
	case neg && !pos:
		return TagNegative
	case pos && !neg:
		return TagPositive
	default:
		return TagNeutral
	}
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(text, term) {
			return true
		}
	}
	return false
}
