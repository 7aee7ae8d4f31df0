package models

// CategoryCount is one bucket of an aggregate count.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// SummaryResponse is the response of GET /api/summary.
type SummaryResponse struct {
	TotalTranscripts  int             `json:"total_transcripts"`
	TotalEmbedded     int             `json:"total_embedded"`
	TotalMessages     int             `json:"total_messages"`
	BySplit           []CategoryCount `json:"by_split"`
	BySentiment       []CategoryCount `json:"by_sentiment"`
	ByExperienceLevel []CategoryCount `json:"by_experience_level"`
	ByIndustry        []CategoryCount `json:"by_industry"`
	ByJobCategory     []CategoryCount `json:"by_job_category"`
	TopAITools        []CategoryCount `json:"top_ai_tools"`
	TopUseCases       []CategoryCount `json:"top_use_cases"`
	TopPainPoints     []CategoryCount `json:"top_pain_points"`
}
