package ranking

import (
	"strings"

	"github.com/formbricks/explorer/internal/models"
)

// Page is one window of a filtered ranking.
type Page struct {
	Results []models.ResultRecord
	// Total counts every ranked item passing the filters, independent of the window.
	Total int
}

// Matches reports whether t passes every provided filter. Split matches exactly; sentiment matches
// case-insensitively; industry matches case-insensitively against the raw or the normalized industry.
// MinScore is not considered here because it depends on the score, not the transcript.
func Matches(t *models.Transcript, filters models.SearchFilters) bool {
	if filters.Split != nil && t.Split != *filters.Split {
		return false
	}

	if filters.Sentiment != nil && !equalFoldPtr(t.Sentiment, *filters.Sentiment) {
		return false
	}

	if filters.Industry != nil &&
		!equalFoldPtr(t.Industry, *filters.Industry) &&
		!equalFoldPtr(t.IndustryNormalized, *filters.Industry) {
		return false
	}

	return true
}

func equalFoldPtr(field *string, want string) bool {
	if field == nil {
		return false
	}

	return strings.EqualFold(strings.TrimSpace(*field), strings.TrimSpace(want))
}

// Select filters ranked (preserving its order), counts the matches and returns the window
// [offset, offset+limit). An offset at or beyond the match count yields an empty page with the
// correct Total. A negative offset is treated as 0 and a non-positive limit returns no results.
func Select(ranked []Scored, filters models.SearchFilters, offset, limit int) Page {
	offset = max(offset, 0)
	results := make([]models.ResultRecord, 0, max(min(limit, len(ranked)), 0))
	total := 0

	for _, s := range ranked {
		if filters.MinScore != nil && s.Score < *filters.MinScore {
			continue
		}

		if !Matches(s.Transcript, filters) {
			continue
		}

		if total >= offset && len(results) < limit {
			results = append(results, NewResultRecord(s))
		}

		total++
	}

	return Page{Results: results, Total: total}
}

// NewResultRecord composes the result card for a scored transcript.
func NewResultRecord(s Scored) models.ResultRecord {
	t := s.Transcript

	return models.ResultRecord{
		TranscriptID: t.TranscriptID,
		Score:        s.Score,
		Split:        t.Split,
		Industry:     t.Industry,
		Sentiment:    t.Sentiment,
		JobTitle:     t.JobTitle,
		Snippet:      Snippet(t),
	}
}
