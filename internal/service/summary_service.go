package service

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/formbricks/explorer/internal/datatypes"
	"github.com/formbricks/explorer/internal/models"
)

// topListSize caps the top_* lists of the summary.
const topListSize = 20

// SummaryService computes aggregate counts over the corpus. The corpus is immutable, so the
// summary is computed once on first use and shared afterwards.
type SummaryService struct {
	corpus  Corpus
	once    sync.Once
	summary *models.SummaryResponse
}

// NewSummaryService creates a SummaryService.
func NewSummaryService(corpus Corpus) *SummaryService {
	return &SummaryService{corpus: corpus}
}

// Summary returns the aggregate counts.
func (s *SummaryService) Summary() *models.SummaryResponse {
	s.once.Do(func() {
		s.summary = summarize(s.corpus)
	})

	return s.summary
}

func summarize(c Corpus) *models.SummaryResponse {
	transcripts := c.All()

	bySplit := make(map[string]int, len(datatypes.AllSplits()))
	sentiment := newCounter()
	experience := newCounter()
	industry := newCounter()
	jobCategory := newCounter()
	aiTools := newCounter()
	useCases := newCounter()
	painPoints := newCounter()
	messages := 0

	for _, t := range transcripts {
		messages += len(t.Messages)
		bySplit[t.Split.String()]++

		sentiment.addScalar(t.Sentiment)
		experience.addScalar(t.ExperienceLevel)
		industry.addScalar(firstKnown(t.IndustryNormalized, t.Industry))
		jobCategory.addScalar(t.JobCategory)

		aiTools.addList(t.AIToolsMentioned)
		useCases.addList(firstNonEmpty(t.UseCaseCategories, t.PrimaryUseCases))
		painPoints.addList(firstNonEmpty(t.PainPointCategories, t.KeyPainPoints))
	}

	splits := make([]models.CategoryCount, 0, len(bySplit))
	for _, split := range datatypes.AllSplits() {
		splits = append(splits, models.CategoryCount{Value: split.String(), Count: bySplit[split.String()]})
	}

	return &models.SummaryResponse{
		TotalTranscripts:  c.Len(),
		TotalEmbedded:     c.EmbeddedCount(),
		TotalMessages:     messages,
		BySplit:           splits,
		BySentiment:       sentiment.sorted(0),
		ByExperienceLevel: experience.sorted(0),
		ByIndustry:        industry.sorted(0),
		ByJobCategory:     jobCategory.sorted(0),
		TopAITools:        aiTools.sorted(topListSize),
		TopUseCases:       useCases.sorted(topListSize),
		TopPainPoints:     painPoints.sorted(topListSize),
	}
}

// counter tallies values case-insensitively, reporting each under its first-seen spelling.
type counter struct {
	counts  map[string]int
	display map[string]string
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}, display: map[string]string{}}
}

func (c *counter) add(value string) {
	key := strings.ToLower(value)
	if _, ok := c.display[key]; !ok {
		c.display[key] = value
	}

	c.counts[key]++
}

// addScalar counts a categorical field; missing and UNKNOWN values share the UNKNOWN bucket.
func (c *counter) addScalar(field *string) {
	v, ok := models.Known(field)
	if !ok {
		v = models.UnknownValue
	}

	c.add(v)
}

// addList counts each distinct known value of a list field once per transcript.
func (c *counter) addList(values []string) {
	seen := make(map[string]bool, len(values))

	for _, raw := range values {
		v, ok := models.Known(&raw)
		if !ok || seen[strings.ToLower(v)] {
			continue
		}

		seen[strings.ToLower(v)] = true
		c.add(v)
	}
}

// sorted returns the buckets by descending count, ties by value. A positive limit truncates the list.
func (c *counter) sorted(limit int) []models.CategoryCount {
	out := make([]models.CategoryCount, 0, len(c.counts))
	for key, n := range c.counts {
		out = append(out, models.CategoryCount{Value: c.display[key], Count: n})
	}

	slices.SortFunc(out, func(a, b models.CategoryCount) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}

		return cmp.Compare(a.Value, b.Value)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

func firstKnown(fields ...*string) *string {
	for _, f := range fields {
		if _, ok := models.Known(f); ok {
			return f
		}
	}

	return nil
}

func firstNonEmpty(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}

	return nil
}
