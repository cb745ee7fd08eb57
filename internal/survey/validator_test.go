package survey_test

import (
	"strings"
	"testing"

	"github.com/surveymesh/surveymesh/internal/survey"
)

func TestEvaluate_EmptyText(t *testing.T) {
	ev := survey.Evaluate("", survey.DefaultThresholds())

	if ev.Verdict != survey.StatusRejected {
		t.Errorf("Verdict = %s, want REJECTED", ev.Verdict)
	}
	if ev.Score != 0 {
		t.Errorf("Score = %d, want 0", ev.Score)
	}
	if ev.Length != 0 {
		t.Errorf("Length = %d, want 0", ev.Length)
	}
}

func TestEvaluate_WhitespaceOnly(t *testing.T) {
	ev := survey.Evaluate("   \t\n  ", survey.DefaultThresholds())
	if ev.Verdict != survey.StatusRejected || ev.Length != 0 {
		t.Errorf("Evaluate = %+v, want rejected with length 0", ev)
	}
}

func TestEvaluate_BoundaryInclusive(t *testing.T) {
	th := survey.DefaultThresholds() // MinLength 40, Divisor 20

	ev := survey.Evaluate(strings.Repeat("a", 40), th)
	if ev.Verdict != survey.StatusValid {
		t.Errorf("Verdict at exactly 40 = %s, want VALID (boundary is inclusive)", ev.Verdict)
	}
	if ev.Score != 2 {
		t.Errorf("Score = %d, want 2 (floor(40/20))", ev.Score)
	}

	ev = survey.Evaluate(strings.Repeat("a", 39), th)
	if ev.Verdict != survey.StatusRejected {
		t.Errorf("Verdict at 39 = %s, want REJECTED", ev.Verdict)
	}
}

func TestEvaluate_TrimsBeforeMeasuring(t *testing.T) {
	th := survey.DefaultThresholds()
	padded := "  " + strings.Repeat("a", 39) + "  "

	ev := survey.Evaluate(padded, th)
	if ev.Length != 39 {
		t.Errorf("Length = %d, want 39 (surrounding whitespace ignored)", ev.Length)
	}
	if ev.Verdict != survey.StatusRejected {
		t.Errorf("Verdict = %s, want REJECTED", ev.Verdict)
	}
}

func TestEvaluate_ScoreClamped(t *testing.T) {
	th := survey.DefaultThresholds() // MaxScore 10

	ev := survey.Evaluate(strings.Repeat("a", 500), th)
	if ev.Score != th.MaxScore {
		t.Errorf("Score = %d, want clamped to %d", ev.Score, th.MaxScore)
	}
	if ev.Verdict != survey.StatusValid {
		t.Errorf("Verdict = %s, want VALID", ev.Verdict)
	}
}

func TestEvaluate_ExplanationTracksVerdict(t *testing.T) {
	th := survey.DefaultThresholds()

	valid := survey.Evaluate(strings.Repeat("a", 80), th)
	rejected := survey.Evaluate("short", th)

	if valid.Explanation == "" || rejected.Explanation == "" {
		t.Fatal("explanations must be non-empty")
	}
	if valid.Explanation == rejected.Explanation {
		t.Error("VALID and REJECTED must carry distinct explanations")
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	th := survey.Thresholds{MinLength: 20, Divisor: 10, MaxScore: 5}
	text := strings.Repeat("x", 33)

	a := survey.Evaluate(text, th)
	b := survey.Evaluate(text, th)
	if a != b {
		t.Errorf("Evaluate not deterministic: %+v vs %+v", a, b)
	}
	if a.Score != 3 {
		t.Errorf("Score = %d, want 3 (floor(33/10))", a.Score)
	}
}

func TestEvaluate_CountsRunesNotBytes(t *testing.T) {
	th := survey.Thresholds{MinLength: 4, Divisor: 2, MaxScore: 10}

	ev := survey.Evaluate("héllo", th) // 5 runes, 6 bytes
	if ev.Length != 5 {
		t.Errorf("Length = %d, want 5 runes", ev.Length)
	}
}
