package keys_test

import (
	"strings"
	"testing"

	"github.com/surveymesh/surveymesh/internal/keys"
)

func TestForSurvey_UsesSurveyTag(t *testing.T) {
	key := keys.ForSurvey("abc-123")
	if key != "survey:abc-123" {
		t.Errorf("ForSurvey = %q, want %q", key, "survey:abc-123")
	}
	if !strings.HasPrefix(key, keys.SurveyScanPrefix) {
		t.Errorf("survey key %q does not match scan prefix %q", key, keys.SurveyScanPrefix)
	}
}

func TestForResponse_MatchesOwnSurveyPrefix(t *testing.T) {
	key := keys.ForResponse("s1", "r1")
	if key != "response:s1:r1" {
		t.Errorf("ForResponse = %q, want %q", key, "response:s1:r1")
	}
	if !strings.HasPrefix(key, keys.ResponsePrefix("s1")) {
		t.Errorf("response key %q does not match its survey prefix %q", key, keys.ResponsePrefix("s1"))
	}
}

func TestResponsePrefix_DoesNotCaptureSiblingSurveys(t *testing.T) {
	// "s1" must not scope responses of "s10" — the trailing separator
	// in the prefix prevents the aliasing.
	key := keys.ForResponse("s10", "r1")
	if strings.HasPrefix(key, keys.ResponsePrefix("s1")) {
		t.Errorf("response key %q of survey s10 matches prefix of survey s1", key)
	}
}

func TestForResponse_PairwiseDistinct(t *testing.T) {
	pairs := [][2]string{
		{"s1", "r1"},
		{"s1", "r2"},
		{"s2", "r1"},
		{"s2", "r2"},
	}
	seen := make(map[string]bool)
	for _, p := range pairs {
		key := keys.ForResponse(p[0], p[1])
		if seen[key] {
			t.Errorf("duplicate key %q for pair %v", key, p)
		}
		seen[key] = true
	}
}

func TestTags_AreDisjoint(t *testing.T) {
	// A survey key can never be captured by a response or counters scan,
	// and vice versa, regardless of the ids involved.
	surveyKey := keys.ForSurvey("response:x")
	if strings.HasPrefix(surveyKey, "response:") {
		t.Errorf("survey key %q collides with the response tag", surveyKey)
	}
	if strings.HasPrefix(keys.ForCounters("s1"), keys.SurveyScanPrefix) {
		t.Error("counters key collides with the survey scan prefix")
	}
	if strings.HasPrefix(keys.ForResponse("s1", "r1"), keys.SurveyScanPrefix) {
		t.Error("response key collides with the survey scan prefix")
	}
}
