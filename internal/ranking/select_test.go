package ranking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formbricks/explorer/internal/datatypes"
	"github.com/formbricks/explorer/internal/models"
)

// rankedFixture returns n scored transcripts with descending scores, cycling splits and sentiments.
func rankedFixture(n int) []Scored {
	splits := datatypes.AllSplits()
	sentiments := []string{"positive", "negative", "Mixed"}
	out := make([]Scored, n)

	for i := range n {
		tr := transcript(fmt.Sprintf("t%03d", i), splits[i%len(splits)], sentiments[i%2])
		if i%5 == 0 {
			tr.Sentiment = strPtr(sentiments[2])
		}

		tr.Industry = strPtr("Tech " + fmt.Sprint(i%4))
		out[i] = Scored{Transcript: tr, Score: 1 - float64(i)/float64(n)}
	}

	return out
}

func ids(results []models.ResultRecord) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.TranscriptID
	}

	return out
}

func TestSelect_PaginationIsConsistent(t *testing.T) {
	ranked := rankedFixture(23)
	split := datatypes.SplitWorkforce
	filters := models.SearchFilters{Split: &split}

	full := Select(ranked, filters, 0, len(ranked))

	for _, limit := range []int{1, 2, 3, 5, 7, 100} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			var collected []string

			for offset := 0; ; offset += limit {
				page := Select(ranked, filters, offset, limit)
				assert.Equal(t, full.Total, page.Total)

				if len(page.Results) == 0 {
					break
				}

				collected = append(collected, ids(page.Results)...)
			}

			assert.Equal(t, ids(full.Results), collected)
		})
	}
}

func TestSelect_TotalIndependentOfWindow(t *testing.T) {
	ranked := rankedFixture(30)
	sentiment := "positive"
	filters := models.SearchFilters{Sentiment: &sentiment}

	want := 0

	for _, s := range ranked {
		if Matches(s.Transcript, filters) {
			want++
		}
	}

	for _, window := range [][2]int{{0, 1}, {0, 100}, {3, 2}, {want, 5}, {1000, 10}} {
		page := Select(ranked, filters, window[0], window[1])
		assert.Equal(t, want, page.Total, "offset=%d limit=%d", window[0], window[1])
	}
}

func TestSelect_OffsetBeyondTotal(t *testing.T) {
	ranked := rankedFixture(5)

	page := Select(ranked, models.SearchFilters{}, 1000, 10)

	assert.Empty(t, page.Results)
	assert.NotNil(t, page.Results)
	assert.Equal(t, 5, page.Total)
}

func TestSelect_FiltersCommuteAndAreIdempotent(t *testing.T) {
	ranked := rankedFixture(40)
	split := datatypes.SplitCreatives
	sentiment := "negative"

	both := Select(ranked, models.SearchFilters{Split: &split, Sentiment: &sentiment}, 0, 100)

	// Apply one filter, then the other, in both orders.
	splitOnly := filterScored(ranked, models.SearchFilters{Split: &split})
	thenSentiment := Select(splitOnly, models.SearchFilters{Sentiment: &sentiment}, 0, 100)

	sentimentOnly := filterScored(ranked, models.SearchFilters{Sentiment: &sentiment})
	thenSplit := Select(sentimentOnly, models.SearchFilters{Split: &split}, 0, 100)

	assert.Equal(t, ids(both.Results), ids(thenSentiment.Results))
	assert.Equal(t, ids(both.Results), ids(thenSplit.Results))

	again := Select(filterScored(ranked, models.SearchFilters{Split: &split, Sentiment: &sentiment}),
		models.SearchFilters{Split: &split, Sentiment: &sentiment}, 0, 100)
	assert.Equal(t, ids(both.Results), ids(again.Results))
}

func filterScored(ranked []Scored, filters models.SearchFilters) []Scored {
	var out []Scored

	for _, s := range ranked {
		if Matches(s.Transcript, filters) {
			out = append(out, s)
		}
	}

	return out
}

func TestSelect_PreservesRankingOrder(t *testing.T) {
	ranked := rankedFixture(20)
	split := datatypes.SplitScientists

	page := Select(ranked, models.SearchFilters{Split: &split}, 0, 20)
	require.NotEmpty(t, page.Results)

	for i := 1; i < len(page.Results); i++ {
		assert.GreaterOrEqual(t, page.Results[i-1].Score, page.Results[i].Score)
	}
}

func TestMatches(t *testing.T) {
	tr := transcript("t1", datatypes.SplitWorkforce, "Positive")
	tr.Industry = strPtr("Software")
	tr.IndustryNormalized = strPtr("Technology")

	workforce := datatypes.SplitWorkforce
	creatives := datatypes.SplitCreatives

	tests := []struct {
		name    string
		filters models.SearchFilters
		want    bool
	}{
		{"no filters", models.SearchFilters{}, true},
		{"split match", models.SearchFilters{Split: &workforce}, true},
		{"split mismatch", models.SearchFilters{Split: &creatives}, false},
		{"sentiment case-insensitive", models.SearchFilters{Sentiment: strPtr("positive")}, true},
		{"sentiment mismatch", models.SearchFilters{Sentiment: strPtr("negative")}, false},
		{"industry raw", models.SearchFilters{Industry: strPtr("software")}, true},
		{"industry normalized", models.SearchFilters{Industry: strPtr("TECHNOLOGY")}, true},
		{"industry mismatch", models.SearchFilters{Industry: strPtr("Healthcare")}, false},
		{"all match", models.SearchFilters{Split: &workforce, Sentiment: strPtr("POSITIVE"), Industry: strPtr("Technology")}, true},
		{"one of several fails", models.SearchFilters{Split: &workforce, Sentiment: strPtr("mixed")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tr, tt.filters))
		})
	}
}

func TestMatches_MissingFieldNeverMatchesFilter(t *testing.T) {
	tr := &models.Transcript{TranscriptID: "t1", Split: datatypes.SplitWorkforce}

	assert.False(t, Matches(tr, models.SearchFilters{Sentiment: strPtr("positive")}))
	assert.False(t, Matches(tr, models.SearchFilters{Industry: strPtr("Technology")}))
}

func TestSelect_MinScore(t *testing.T) {
	ranked := []Scored{
		{Transcript: transcript("a", datatypes.SplitWorkforce, "positive"), Score: 0.8},
		{Transcript: transcript("b", datatypes.SplitWorkforce, "positive"), Score: 0.1},
		{Transcript: transcript("c", datatypes.SplitWorkforce, "positive"), Score: -0.2},
	}

	unfiltered := Select(ranked, models.SearchFilters{}, 0, 10)
	assert.Equal(t, []string{"a", "b", "c"}, ids(unfiltered.Results))
	assert.InDelta(t, -0.2, unfiltered.Results[2].Score, 1e-9)

	minScore := 0.0
	page := Select(ranked, models.SearchFilters{MinScore: &minScore}, 0, 10)
	assert.Equal(t, []string{"a", "b"}, ids(page.Results))
	assert.Equal(t, 2, page.Total)
}

func TestSelect_NonPositiveLimit(t *testing.T) {
	page := Select(rankedFixture(4), models.SearchFilters{}, 0, 0)

	assert.Empty(t, page.Results)
	assert.Equal(t, 4, page.Total)
}

func TestNewResultRecord(t *testing.T) {
	tr := transcript("t9", datatypes.SplitScientists, "mixed")
	tr.JobTitle = strPtr("Chemist")
	tr.Industry = strPtr("Pharma")

	rec := NewResultRecord(Scored{Transcript: tr, Score: 0.42})

	assert.Equal(t, "t9", rec.TranscriptID)
	assert.InDelta(t, 0.42, rec.Score, 1e-9)
	assert.Equal(t, datatypes.SplitScientists, rec.Split)
	assert.Equal(t, "Chemist", *rec.JobTitle)
	assert.Equal(t, "Pharma", *rec.Industry)
	assert.Equal(t, "mixed", *rec.Sentiment)
	assert.Equal(t, "hello from t9", rec.Snippet)
}
