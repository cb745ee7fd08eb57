// Package survey implements the survey domain: survey and response
// repositories over a shared key-value namespace, the answer-length
// validator, and the scan-and-reduce aggregation engine.
package survey

// Status classifies a stored response.
type Status string

const (
	// StatusPending marks a response awaiting review.
	StatusPending Status = "PENDING"
	// StatusValid marks a response that counts toward wallet and score
	// aggregates.
	StatusValid Status = "VALID"
	// StatusRejected marks a response excluded from aggregates.
	StatusRejected Status = "REJECTED"
)

// KnownStatus reports whether s is one of the three defined statuses.
func KnownStatus(s Status) bool {
	switch s {
	case StatusPending, StatusValid, StatusRejected:
		return true
	}
	return false
}

// Survey is a creator-defined questionnaire record. Once written it is
// immutable: no update or delete operation exists.
type Survey struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Questions       []string `json:"questions"`
	CreatorWallet   string   `json:"creator_wallet"`
	TotalReward     float64  `json:"total_reward"`
	TargetResponses int      `json:"target_responses"`
	CreatedAt       string   `json:"created_at"`
}

// Response is one respondent's submission to a survey. The store is
// append-only: a response is written exactly once.
//
// Score is a pointer so that a record stored without a numeric score
// decodes as nil and is excluded from score averages while still counting
// toward response totals.
type Response struct {
	ID          string   `json:"id"`
	SurveyID    string   `json:"survey_id"`
	Wallet      string   `json:"wallet"`
	Answers     []string `json:"answers"`
	Status      Status   `json:"status"`
	Score       *float64 `json:"score,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// CreateSurveyParams holds the input for creating a survey.
type CreateSurveyParams struct {
	Title           string
	Description     string
	Questions       []string
	CreatorWallet   string
	TotalReward     float64
	TargetResponses int
}

// SubmitResponseParams holds the input for submitting a response. The
// caller supplies the status, score, and explanation directly — the
// repository does not run the validator itself.
type SubmitResponseParams struct {
	SurveyID    string
	Wallet      string
	Answers     []string
	Status      Status
	Score       *float64
	Explanation string
}
