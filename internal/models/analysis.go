package models

// GenderMentions counts how often each gender is referenced in a story.
// Counts are plain JSON numbers; services may send 5 or 5.0.
type GenderMentions struct {
	Male   float64 `json:"male"`
	Female float64 `json:"female"`
}

// AnalysisResult is the score record produced by the external analyzer.
// Every field is optional on the wire and decodes to zero when absent.
type AnalysisResult struct {
	GenderBalanceScore float64        `json:"gender_balance_score"`
	RoleDiversityScore float64        `json:"role_diversity_score"`
	StereotypePenalty  float64        `json:"stereotype_penalty"`
	GenderMentions     GenderMentions `json:"gender_mentions"`
}

type AnalyzeRequest struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

type AnalyzeErrorResponse struct {
	Error string `json:"error"`
}
