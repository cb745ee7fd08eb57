package survey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/surveymesh/surveymesh/internal/keys"
	"github.com/surveymesh/surveymesh/internal/kv"
)

// Counters is the incrementally maintained per-survey tally, updated on
// each successful submit. It lets callers read response totals without
// paying for a full prefix scan; the scan-based reducer in stats.go
// remains the source of truth.
type Counters struct {
	SurveyID       string  `json:"survey_id"`
	TotalResponses int     `json:"total_responses"`
	ValidResponses int     `json:"valid_responses"`
	ValidScoreSum  float64 `json:"valid_score_sum"`
	ScoredValid    int     `json:"scored_valid"`
}

// AvgScore returns the running mean of VALID scored responses, or nil
// when there are none.
func (c *Counters) AvgScore() *float64 {
	if c.ScoredValid == 0 {
		return nil
	}
	avg := c.ValidScoreSum / float64(c.ScoredValid)
	return &avg
}

// Counters returns the survey's running tally. A survey with no
// submissions yet yields zero counters, not an error.
func (s *Store) Counters(ctx context.Context, surveyID string) (*Counters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getSurvey(ctx, surveyID); err != nil {
		return nil, err
	}
	return s.loadCounters(ctx, surveyID)
}

func (s *Store) loadCounters(ctx context.Context, surveyID string) (*Counters, error) {
	data, err := s.kv.Get(ctx, keys.ForCounters(surveyID))
	if errors.Is(err, kv.ErrNotFound) {
		return &Counters{SurveyID: surveyID}, nil
	}
	if err != nil {
		return nil, err
	}

	var c Counters
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding counters for %s: %w", surveyID, err)
	}
	return &c, nil
}

// bumpCounters applies one response to the running tally. It runs under
// the store mutex, so the read-modify-write cannot interleave with
// another submit to the same instance.
func (s *Store) bumpCounters(ctx context.Context, r *Response) error {
	c, err := s.loadCounters(ctx, r.SurveyID)
	if err != nil {
		return err
	}

	c.TotalResponses++
	if r.Status == StatusValid {
		c.ValidResponses++
		if r.Score != nil {
			c.ValidScoreSum += *r.Score
			c.ScoredValid++
		}
	}
	return s.putJSON(ctx, keys.ForCounters(r.SurveyID), c)
}
