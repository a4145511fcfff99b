package services

import (
	"strings"

	"review-analytics/source"
)

// aliasEntry binds a canonical field name to the source names that may carry
// it, in precedence order.
type aliasEntry struct {
	canonical string
	aliases   []string
}

// Normalizer re-keys raw rows onto a fixed canonical field set using a static
// alias table. Resolution is best-effort per field: the first alias present
// in the row (case-insensitive, value non-nil) wins, and a field with no
// match is simply left out of the result. All knowledge of how raw fields
// are named lives here.
type Normalizer struct {
	entries []aliasEntry
}

// NewReviewNormalizer covers the field drift seen across raw review sources.
func NewReviewNormalizer() *Normalizer {
	return &Normalizer{entries: []aliasEntry{
		{"reviewId", []string{"reviewId", "review_id", "id"}},
		{"userName", []string{"userName", "user_name", "author", "author_name"}},
		{"userImage", []string{"userImage", "user_image", "avatar"}},
		{"text", []string{"content", "review_text", "text", "body"}},
		{"rating", []string{"score", "rating", "stars"}},
		{"thumbsUpCount", []string{"thumbsUpCount", "likes", "helpful_count"}},
		{"reviewCreatedVersion", []string{"reviewCreatedVersion", "review_version"}},
		{"at", []string{"at", "timestamp", "created_at"}},
		{"replyContent", []string{"replyContent", "reply_text"}},
		{"repliedAt", []string{"repliedAt", "reply_timestamp"}},
		{"appVersion", []string{"appVersion", "app_version"}},
		{"appId", []string{"appId", "app_id"}},
	}}
}

// NewAppNormalizer covers the field drift seen across raw app-metadata sources.
func NewAppNormalizer() *Normalizer {
	return &Normalizer{entries: []aliasEntry{
		{"appId", []string{"appId", "app_id"}},
		{"title", []string{"title", "app_name", "name"}},
		{"summary", []string{"summary", "short_description"}},
		{"descriptionHTML", []string{"descriptionHTML", "description", "description_html"}},
		{"installs", []string{"installs"}},
		{"minInstalls", []string{"minInstalls", "min_installs"}},
		{"realInstalls", []string{"realInstalls", "real_installs"}},
		{"score", []string{"score", "rating"}},
		{"version", []string{"version", "app_version"}},
		{"updated", []string{"updated"}},
		{"released", []string{"released", "release_date"}},
		{"lastUpdatedOn", []string{"lastUpdatedOn", "last_updated"}},
		{"categories", []string{"categories"}},
	}}
}

// Normalize produces a row keyed by canonical field names. Canonical fields
// with no matching alias are absent from the result.
func (n *Normalizer) Normalize(row source.Row) source.Row {
	lower := make(map[string]any, len(row))
	for k, v := range row {
		lower[strings.ToLower(k)] = v
	}

	out := make(source.Row, len(n.entries))
	for _, e := range n.entries {
		for _, alias := range e.aliases {
			if v, ok := lower[strings.ToLower(alias)]; ok && v != nil {
				out[e.canonical] = v
				break
			}
		}
	}
	return out
}
