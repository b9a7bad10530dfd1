package types

// OverviewRequest is the body of POST /hamelp/v1/ai-overview.
type OverviewRequest struct {
	Query string `json:"query" binding:"required"`
}

// Source is one cited FAQ resolved against the current catalog.
type Source struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// AnswerResult is the payload returned to the caller. The answer text may
// contain inline [ID:xxx] citation markers; the presentation layer turns
// them into links using Sources. Generated records whether an AI call was
// actually made: canned answers must not consume rate-limit quota.
type AnswerResult struct {
	Answer    string   `json:"answer"`
	Sources   []Source `json:"sources"`
	Generated bool     `json:"-"`
}

// ModelAnswer is the strict two-field JSON object the model is instructed
// to return.
type ModelAnswer struct {
	Answer   string   `json:"answer"`
	CitedIDs []string `json:"cited_ids"`
}
