package router_test

import (
	"context"
	"errors"
	"testing"

	"github.com/surveymesh/surveymesh/internal/kv"
	"github.com/surveymesh/surveymesh/internal/router"
	"github.com/surveymesh/surveymesh/internal/survey"
)

func newTestRegistry(t *testing.T) (*router.Registry, *int) {
	t.Helper()
	opened := 0
	reg := router.New(func(instance string) (*survey.Store, error) {
		opened++
		kvs, err := kv.OpenBadgerInMemory()
		if err != nil {
			return nil, err
		}
		return survey.New(kvs), nil
	})
	t.Cleanup(func() { reg.Close() })
	return reg, &opened
}

func TestResolve_EmptySessionUsesDefault(t *testing.T) {
	reg, _ := newTestRegistry(t)

	a, err := reg.Resolve("")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	b, err := reg.Resolve(router.DefaultInstance)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if a != b {
		t.Error("empty session and explicit default must share one instance")
	}
}

func TestResolve_CachesInstances(t *testing.T) {
	reg, opened := newTestRegistry(t)

	if _, err := reg.Resolve("team-a"); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Resolve("team-a"); err != nil {
		t.Fatal(err)
	}
	if *opened != 1 {
		t.Errorf("opener called %d times, want 1", *opened)
	}
}

func TestResolve_InstancesAreIsolated(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	a, err := reg.Resolve("team-a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := reg.Resolve("team-b")
	if err != nil {
		t.Fatal(err)
	}

	sv, err := a.CreateSurvey(ctx, survey.CreateSurveyParams{
		Title:           "only in a",
		Questions:       []string{"q"},
		CreatorWallet:   "0xC",
		TotalReward:     1,
		TargetResponses: 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := b.GetSurvey(ctx, sv.ID); !errors.Is(err, survey.ErrSurveyNotFound) {
		t.Errorf("survey leaked across instances: err = %v", err)
	}
}

func TestResolve_RejectsUnsafeSessionIDs(t *testing.T) {
	reg, _ := newTestRegistry(t)

	// "." and ".." pass the character check but name the instances root
	// and its parent; accepting them would nest one instance's database
	// inside another's directory tree.
	for _, bad := range []string{"../escape", "a/b", "spaces here", ".", ".."} {
		if _, err := reg.Resolve(bad); err == nil {
			t.Errorf("Resolve(%q) succeeded, want error", bad)
		}
	}
}
