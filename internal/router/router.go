// Package router resolves an inbound request to the store instance that
// owns its key namespace.
//
// Each instance is an isolated namespace: a survey and all of its
// responses live in exactly one instance, so the aggregation scans stay
// consistent without cross-instance coordination. Instances are opened
// lazily on first use and cached for the life of the process.
package router

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/surveymesh/surveymesh/internal/survey"
)

// DefaultInstance is the derived instance key used when a request
// carries no session identifier.
const DefaultInstance = "default"

// instancePattern restricts instance keys to filesystem-safe names,
// since the key doubles as the backend's directory name.
var instancePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Opener creates the store for a namespace the first time a request is
// routed to it.
type Opener func(instance string) (*survey.Store, error)

// Registry maps instance keys to live store handles.
type Registry struct {
	mu        sync.Mutex
	open      Opener
	instances map[string]*survey.Store
}

// New creates a Registry with the given instance opener.
func New(open Opener) *Registry {
	return &Registry{
		open:      open,
		instances: make(map[string]*survey.Store),
	}
}

// Resolve returns the store instance owning the given session's
// namespace, opening it on first use. An empty session id resolves to
// the default instance.
func (r *Registry) Resolve(sessionID string) (*survey.Store, error) {
	if sessionID == "" {
		sessionID = DefaultInstance
	}
	// "." and ".." match the pattern but are reserved path names; either
	// would resolve to a directory outside the instances root.
	if !instancePattern.MatchString(sessionID) || sessionID == "." || sessionID == ".." {
		return nil, fmt.Errorf("router: invalid session id %q", sessionID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.instances[sessionID]; ok {
		return s, nil
	}
	s, err := r.open(sessionID)
	if err != nil {
		return nil, fmt.Errorf("router: opening instance %s: %w", sessionID, err)
	}
	r.instances[sessionID] = s
	return s, nil
}

// Close closes every opened instance, returning the first error.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for key, s := range r.instances {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing instance %s: %w", key, err)
		}
		delete(r.instances, key)
	}
	return firstErr
}
