package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formbricks/explorer/internal/corpus/corpustest"
	"github.com/formbricks/explorer/internal/datatypes"
	"github.com/formbricks/explorer/internal/models"
)

func TestSummaryService_Summary(t *testing.T) {
	transcripts := []models.Transcript{
		corpustest.Transcript("a", datatypes.SplitWorkforce, "Positive", "Software"),
		corpustest.Transcript("b", datatypes.SplitWorkforce, "positive", "Finance"),
		corpustest.Transcript("c", datatypes.SplitScientists, models.UnknownValue, "Biology"),
	}

	transcripts[0].IndustryNormalized = corpustest.Ptr("Technology")
	transcripts[0].AIToolsMentioned = []string{"ChatGPT", "Claude", "chatgpt"}
	transcripts[1].AIToolsMentioned = []string{"ChatGPT", models.UnknownValue}
	transcripts[0].PrimaryUseCases = []string{"writing emails"}
	transcripts[0].UseCaseCategories = []string{"Writing"}
	transcripts[1].PrimaryUseCases = []string{"Writing"}
	transcripts[2].KeyPainPoints = []string{"hallucinations"}
	transcripts[2].ExperienceLevel = corpustest.Ptr("senior")

	store := corpustest.NewStore(t, transcripts, map[string][]float32{
		"a": {1, 0},
		"b": {0, 1},
	})

	svc := NewSummaryService(store)
	got := svc.Summary()

	assert.Equal(t, 3, got.TotalTranscripts)
	assert.Equal(t, 2, got.TotalEmbedded)
	assert.Equal(t, 6, got.TotalMessages)

	assert.Equal(t, []models.CategoryCount{
		{Value: "workforce", Count: 2},
		{Value: "creatives", Count: 0},
		{Value: "scientists", Count: 1},
	}, got.BySplit)

	assert.Equal(t, []models.CategoryCount{
		{Value: "Positive", Count: 2},
		{Value: models.UnknownValue, Count: 1},
	}, got.BySentiment)

	assert.Equal(t, []models.CategoryCount{
		{Value: "Biology", Count: 1},
		{Value: "Finance", Count: 1},
		{Value: "Technology", Count: 1},
	}, got.ByIndustry, "normalized industry wins when known")

	assert.Equal(t, []models.CategoryCount{
		{Value: models.UnknownValue, Count: 2},
		{Value: "senior", Count: 1},
	}, got.ByExperienceLevel)

	assert.Equal(t, []models.CategoryCount{
		{Value: "ChatGPT", Count: 2},
		{Value: "Claude", Count: 1},
	}, got.TopAITools, "counted once per transcript, UNKNOWN skipped")

	assert.Equal(t, []models.CategoryCount{{Value: "Writing", Count: 2}}, got.TopUseCases)
	assert.Equal(t, []models.CategoryCount{{Value: "hallucinations", Count: 1}}, got.TopPainPoints)

	assert.Same(t, got, svc.Summary(), "summary is computed once")
}

func TestCounter_SortedLimit(t *testing.T) {
	c := newCounter()
	for _, v := range []string{"b", "a", "c", "a", "b", "a"} {
		c.add(v)
	}

	assert.Equal(t, []models.CategoryCount{{Value: "a", Count: 3}, {Value: "b", Count: 2}}, c.sorted(2))
	assert.Len(t, c.sorted(0), 3)
}
