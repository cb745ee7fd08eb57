package survey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/surveymesh/surveymesh/internal/keys"
	"github.com/surveymesh/surveymesh/internal/kv"
)

var (
	// ErrSurveyNotFound signals that the referenced survey id has no record.
	ErrSurveyNotFound = errors.New("survey not found")
	// ErrInvalidInput signals malformed or missing required input, caught
	// before any storage access.
	ErrInvalidInput = errors.New("invalid input")
)

// Store persists surveys and responses in one instance's key namespace.
//
// Store serializes its operations with a mutex: one request runs to
// completion before the next starts, which is what makes the
// check-then-write in SubmitResponse atomic — once "survey exists" is
// observed, nothing can invalidate it before the response write lands.
type Store struct {
	mu sync.Mutex
	kv kv.Store

	// injectable for deterministic tests
	now   func() time.Time
	newID func() string
}

// New creates a Store over the given key-value backend.
func New(kvs kv.Store) *Store {
	return &Store{
		kv:    kvs,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// CreateSurvey validates the input, assigns a fresh id and timestamp, and
// writes one record at the survey's key. The returned record is exactly
// what was stored.
func (s *Store) CreateSurvey(ctx context.Context, p CreateSurveyParams) (*Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(p.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(p.Questions) == 0 {
		return nil, fmt.Errorf("%w: at least one question is required", ErrInvalidInput)
	}
	for i, q := range p.Questions {
		if strings.TrimSpace(q) == "" {
			return nil, fmt.Errorf("%w: question %d is empty", ErrInvalidInput, i+1)
		}
	}
	if p.CreatorWallet == "" {
		return nil, fmt.Errorf("%w: creator wallet is required", ErrInvalidInput)
	}
	if p.TotalReward <= 0 {
		return nil, fmt.Errorf("%w: total reward must be positive", ErrInvalidInput)
	}
	if p.TargetResponses <= 0 {
		return nil, fmt.Errorf("%w: target responses must be a positive integer", ErrInvalidInput)
	}

	sv := &Survey{
		ID:              s.newID(),
		Title:           p.Title,
		Description:     p.Description,
		Questions:       p.Questions,
		CreatorWallet:   p.CreatorWallet,
		TotalReward:     p.TotalReward,
		TargetResponses: p.TargetResponses,
		CreatedAt:       s.timestamp(),
	}
	if err := s.putJSON(ctx, keys.ForSurvey(sv.ID), sv); err != nil {
		return nil, err
	}
	return sv, nil
}

// GetSurvey returns the survey stored under the given id, or
// ErrSurveyNotFound.
func (s *Store) GetSurvey(ctx context.Context, surveyID string) (*Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getSurvey(ctx, surveyID)
}

// getSurvey is the lock-free point lookup shared by operations that
// already hold the store mutex.
func (s *Store) getSurvey(ctx context.Context, surveyID string) (*Survey, error) {
	if surveyID == "" {
		return nil, fmt.Errorf("%w: survey id is required", ErrInvalidInput)
	}

	data, err := s.kv.Get(ctx, keys.ForSurvey(surveyID))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSurveyNotFound, surveyID)
	}
	if err != nil {
		return nil, err
	}

	var sv Survey
	if err := json.Unmarshal(data, &sv); err != nil {
		return nil, fmt.Errorf("decoding survey %s: %w", surveyID, err)
	}
	return &sv, nil
}

// SurveysByCreator scans every survey record and returns those whose
// creator wallet matches exactly (case-sensitive). Results follow the
// store's native key order, which is not creation order.
func (s *Store) SurveysByCreator(ctx context.Context, creatorWallet string) ([]Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surveysByCreator(ctx, creatorWallet)
}

func (s *Store) surveysByCreator(ctx context.Context, creatorWallet string) ([]Survey, error) {
	if creatorWallet == "" {
		return nil, fmt.Errorf("%w: creator wallet is required", ErrInvalidInput)
	}

	pairs, err := s.kv.List(ctx, keys.SurveyScanPrefix)
	if err != nil {
		return nil, err
	}

	surveys := []Survey{}
	for _, pr := range pairs {
		var sv Survey
		if err := json.Unmarshal(pr.Value, &sv); err != nil {
			// Malformed records are skipped rather than aborting the scan.
			log.Printf("WARNING: skipping undecodable record %s: %v", pr.Key, err)
			continue
		}
		if sv.CreatorWallet == creatorWallet {
			surveys = append(surveys, sv)
		}
	}
	return surveys, nil
}

// SubmitResponse appends one response to a survey. The survey must exist;
// otherwise ErrSurveyNotFound is returned and nothing is written. The
// check and the write run under the store mutex, so the existence check
// cannot be invalidated mid-flight.
func (s *Store) SubmitResponse(ctx context.Context, p SubmitResponseParams) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Wallet == "" {
		return nil, fmt.Errorf("%w: wallet is required", ErrInvalidInput)
	}
	if len(p.Answers) == 0 {
		return nil, fmt.Errorf("%w: at least one answer is required", ErrInvalidInput)
	}
	if !KnownStatus(p.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, p.Status)
	}

	if _, err := s.getSurvey(ctx, p.SurveyID); err != nil {
		return nil, err
	}

	resp := &Response{
		ID:          s.newID(),
		SurveyID:    p.SurveyID,
		Wallet:      p.Wallet,
		Answers:     p.Answers,
		Status:      p.Status,
		Score:       p.Score,
		Explanation: p.Explanation,
		CreatedAt:   s.timestamp(),
	}
	if err := s.putJSON(ctx, keys.ForResponse(resp.SurveyID, resp.ID), resp); err != nil {
		return nil, err
	}

	// The counters record is advisory: the scan-based reducer remains the
	// source of truth, so a failed counter update must not fail the submit.
	if err := s.bumpCounters(ctx, resp); err != nil {
		log.Printf("WARNING: counters update for survey %s: %v", p.SurveyID, err)
	}

	return resp, nil
}

// Responses returns every response recorded for a survey, in the store's
// native key order. Undecodable records are skipped.
func (s *Store) Responses(ctx context.Context, surveyID string) ([]Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getSurvey(ctx, surveyID); err != nil {
		return nil, err
	}

	pairs, err := s.kv.List(ctx, keys.ResponsePrefix(surveyID))
	if err != nil {
		return nil, err
	}

	responses := []Response{}
	for _, pr := range pairs {
		var r Response
		if err := json.Unmarshal(pr.Value, &r); err != nil {
			log.Printf("WARNING: skipping undecodable record %s: %v", pr.Key, err)
			continue
		}
		responses = append(responses, r)
	}
	return responses, nil
}

func (s *Store) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.kv.Put(ctx, key, data)
}

// timestamp returns the wall-clock write time as RFC 3339 UTC.
func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}
