package survey

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"

	"github.com/surveymesh/surveymesh/internal/keys"
)

// Stats summarizes every response submitted to one survey.
type Stats struct {
	SurveyID string `json:"survey_id"`

	// TotalResponses counts every scanned record regardless of status,
	// including records too malformed to decode.
	TotalResponses int `json:"total_responses"`

	// TotalValidWallets is the size of the deduplicated wallet set over
	// VALID responses. Deduplication is case-insensitive.
	TotalValidWallets int `json:"total_valid_wallets"`

	// AvgScore is the arithmetic mean of the score field over VALID
	// responses that carry a numeric score, or nil when there are none.
	AvgScore *float64 `json:"avg_score"`

	// Wallets is the deduplicated wallet set of VALID responses. Each
	// entry keeps the casing of the first record seen in scan order;
	// the set is sorted by its case-folded form for deterministic output.
	Wallets []string `json:"wallets"`
}

// WalletSummary is the reduced view returned by ValidWallets.
type WalletSummary struct {
	SurveyID          string   `json:"survey_id"`
	TotalResponses    int      `json:"total_responses"`
	TotalValidWallets int      `json:"total_valid_wallets"`
	Wallets           []string `json:"wallets"`
}

// SurveyWithStats pairs a survey record with its aggregate statistics.
type SurveyWithStats struct {
	Survey
	Stats *Stats `json:"stats,omitempty"`
}

// StatsForSurvey scans the survey's entire response prefix and reduces it
// into summary statistics. The survey must exist. The scan is unbounded:
// it runs to completion or propagates the store's failure.
func (s *Store) StatsForSurvey(ctx context.Context, surveyID string) (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsForSurvey(ctx, surveyID)
}

func (s *Store) statsForSurvey(ctx context.Context, surveyID string) (*Stats, error) {
	if _, err := s.getSurvey(ctx, surveyID); err != nil {
		return nil, err
	}

	pairs, err := s.kv.List(ctx, keys.ResponsePrefix(surveyID))
	if err != nil {
		return nil, err
	}

	stats := &Stats{SurveyID: surveyID}
	seen := make(map[string]string) // case fold -> first-seen casing
	var scoreSum float64
	var scored int

	for _, pr := range pairs {
		stats.TotalResponses++

		var r Response
		if err := json.Unmarshal(pr.Value, &r); err != nil {
			// Counted above; excluded from every other aggregate.
			log.Printf("WARNING: skipping undecodable record %s: %v", pr.Key, err)
			continue
		}
		if r.Status != StatusValid {
			continue
		}

		fold := strings.ToLower(r.Wallet)
		if _, ok := seen[fold]; !ok {
			seen[fold] = r.Wallet
		}
		if r.Score != nil {
			scoreSum += *r.Score
			scored++
		}
	}

	folds := make([]string, 0, len(seen))
	for f := range seen {
		folds = append(folds, f)
	}
	sort.Strings(folds)
	stats.Wallets = make([]string, 0, len(folds))
	for _, f := range folds {
		stats.Wallets = append(stats.Wallets, seen[f])
	}
	stats.TotalValidWallets = len(stats.Wallets)

	if scored > 0 {
		avg := scoreSum / float64(scored)
		stats.AvgScore = &avg
	}
	return stats, nil
}

// ValidWallets returns the deduplicated wallet set of a survey's VALID
// responses plus response and wallet counts — a reduced view of
// StatsForSurvey over the same scan.
func (s *Store) ValidWallets(ctx context.Context, surveyID string) (*WalletSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.statsForSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return &WalletSummary{
		SurveyID:          stats.SurveyID,
		TotalResponses:    stats.TotalResponses,
		TotalValidWallets: stats.TotalValidWallets,
		Wallets:           stats.Wallets,
	}, nil
}

// SurveysByCreatorWithStats composes the creator scan with a per-survey
// stats scan. O(surveys × responses per survey); no pagination is applied.
func (s *Store) SurveysByCreatorWithStats(ctx context.Context, creatorWallet string) ([]SurveyWithStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	surveys, err := s.surveysByCreator(ctx, creatorWallet)
	if err != nil {
		return nil, err
	}

	out := make([]SurveyWithStats, 0, len(surveys))
	for _, sv := range surveys {
		stats, err := s.statsForSurvey(ctx, sv.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, SurveyWithStats{Survey: sv, Stats: stats})
	}
	return out, nil
}
