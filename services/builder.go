package services

import (
	"fmt"
	"strconv"

	"review-analytics/models"
	"review-analytics/source"
	"review-analytics/utils"
)

// Builder assembles canonical records from raw rows: normalize the field
// names, coerce the values, fill the fixed shape. Every row produces exactly
// one record; fields that cannot be recovered are left absent, never
// reported as errors.
type Builder struct {
	logger  *utils.Logger
	reviews *Normalizer
	apps    *Normalizer
}

// NewBuilder creates a Builder with the given logger.
func NewBuilder(logger *utils.Logger) *Builder {
	return &Builder{
		logger:  logger,
		reviews: NewReviewNormalizer(),
		apps:    NewAppNormalizer(),
	}
}

// Review builds the canonical review record for one raw row.
func (b *Builder) Review(row source.Row) models.Review {
	n := b.reviews.Normalize(row)

	r := models.Review{
		AppID:         fieldString(n["appId"]),
		ReviewID:      fieldString(n["reviewId"]),
		UserName:      fieldString(n["userName"]),
		UserImage:     fieldString(n["userImage"]),
		Text:          fieldString(n["text"]),
		Rating:        CoerceRating(n["rating"]),
		ThumbsUpCount: int(CoerceInt64(n["thumbsUpCount"])),
		ReviewVersion: fieldString(n["reviewCreatedVersion"]),
		At:            fieldString(n["at"]),
		ReplyContent:  fieldString(n["replyContent"]),
		RepliedAt:     fieldString(n["repliedAt"]),
		AppVersion:    fieldString(n["appVersion"]),
	}
	r.AtISO, r.AtEpoch = CoerceTimestamp(n["at"])

	if r.Rating == 0 && n["rating"] != nil {
		b.logger.Debug("[builder] unusable rating %v (review %q)", n["rating"], r.ReviewID)
	}
	return r
}

// App builds the canonical app record for one raw row.
func (b *Builder) App(row source.Row) models.App {
	n := b.apps.Normalize(row)

	installs := CoerceInt64(n["minInstalls"])
	if installs == 0 {
		installs = ParseInstalls(n["installs"])
	}

	ids, names := FlattenCategories(n["categories"])

	return models.App{
		AppID:           fieldString(n["appId"]),
		Title:           CollapseWhitespace(fieldString(n["title"])),
		Summary:         CollapseWhitespace(fieldString(n["summary"])),
		DescriptionText: StripHTML(fieldString(n["descriptionHTML"])),
		MinInstalls:     installs,
		RealInstalls:    CoerceInt64(n["realInstalls"]),
		Score:           CoerceFloat(n["score"]),
		Version:         fieldString(n["version"]),
		UpdatedISO:      EpochToISO(n["updated"]),
		ReleasedISO:     humanISO(n["released"]),
		LastUpdatedISO:  humanISO(n["lastUpdatedOn"]),
		CategoryIDs:     ids,
		CategoryNames:   names,
	}
}

// humanISO handles released/lastUpdatedOn tokens, which may arrive in either
// the strict or the human layouts.
func humanISO(v any) string {
	iso, _ := CoerceTimestamp(v)
	return iso
}

// fieldString renders a raw value for a canonical string field. JSON numbers
// keep their shortest form, so numeric ids survive the round trip.
func fieldString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
