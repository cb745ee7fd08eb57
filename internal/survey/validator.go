package survey

import (
	"strings"
	"unicode/utf8"
)

// Thresholds configures the answer validator. The zero value is not
// usable; construct via DefaultThresholds or from config.
type Thresholds struct {
	// MinLength is the trimmed length at or above which an answer is
	// VALID. The boundary is inclusive.
	MinLength int
	// Divisor converts length into a score: length/Divisor, floored.
	Divisor int
	// MaxScore caps the score.
	MaxScore int
}

// DefaultThresholds mirrors config.DefaultConfig.
func DefaultThresholds() Thresholds {
	return Thresholds{MinLength: 40, Divisor: 20, MaxScore: 10}
}

// Evaluation is the validator's advisory verdict for one answer text.
type Evaluation struct {
	Verdict     Status `json:"verdict"`
	Score       int    `json:"score"`
	Length      int    `json:"length"`
	Explanation string `json:"explanation"`
}

const (
	explainValid    = "Answer meets the minimum length requirement."
	explainRejected = "Answer is too short to be considered substantive."
)

// Evaluate classifies free-text answer length into a verdict and score.
// It is pure and deterministic given the same trimmed input, never
// touches storage, and is advisory: callers may pass its output to
// SubmitResponse or supply a status of their own.
func Evaluate(text string, th Thresholds) Evaluation {
	length := utf8.RuneCountInString(strings.TrimSpace(text))

	score := length / th.Divisor
	if score > th.MaxScore {
		score = th.MaxScore
	}

	ev := Evaluation{Score: score, Length: length}
	if length >= th.MinLength {
		ev.Verdict = StatusValid
		ev.Explanation = explainValid
	} else {
		ev.Verdict = StatusRejected
		ev.Explanation = explainRejected
	}
	return ev
}
