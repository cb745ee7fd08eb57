// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations
// and injects them into the tools that depend on abstractions.
// No business logic lives here — only wiring.
package server

import (
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/surveymesh/surveymesh/internal/config"
	"github.com/surveymesh/surveymesh/internal/kv"
	"github.com/surveymesh/surveymesh/internal/router"
	"github.com/surveymesh/surveymesh/internal/survey"
	"github.com/surveymesh/surveymesh/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all survey tools
// registered. This is the single place where all dependencies are
// resolved.
//
// The returned cleanup function closes every instance store that was
// opened during the server's lifetime and must be called on shutdown
// (typically via defer). It is always non-nil.
func New(cfg config.Config) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	registry := router.New(func(instance string) (*survey.Store, error) {
		return openStore(cfg, instance)
	})
	cleanup := func() {
		_ = registry.Close()
	}

	thresholds := survey.Thresholds{
		MinLength: cfg.MinAnswerLength,
		Divisor:   cfg.ScoreDivisor,
		MaxScore:  cfg.MaxScore,
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"surveymesh",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register survey tools ---

	createTool := tools.NewCreateSurveyTool(registry)
	s.AddTool(createTool.Definition(), createTool.Handle)

	getTool := tools.NewGetSurveyTool(registry)
	s.AddTool(getTool.Definition(), getTool.Handle)

	submitTool := tools.NewSubmitResponseTool(registry, thresholds)
	s.AddTool(submitTool.Definition(), submitTool.Handle)

	evaluateTool := tools.NewEvaluateAnswerTool(thresholds)
	s.AddTool(evaluateTool.Definition(), evaluateTool.Handle)

	statsTool := tools.NewSurveyStatsTool(registry)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	walletsTool := tools.NewValidWalletsTool(registry)
	s.AddTool(walletsTool.Definition(), walletsTool.Handle)

	creatorTool := tools.NewCreatorSurveysTool(registry)
	s.AddTool(creatorTool.Definition(), creatorTool.Handle)

	return s, cleanup, nil
}

// openStore opens the configured storage backend for one instance.
// Each instance gets its own directory under <data-dir>/instances so
// sessions never share state.
func openStore(cfg config.Config, instance string) (*survey.Store, error) {
	dir := filepath.Join(cfg.DataDir, "instances", instance)

	var (
		kvs kv.Store
		err error
	)
	switch cfg.Backend {
	case config.BackendBadger:
		kvs, err = kv.OpenBadger(kv.BadgerConfig{Path: dir})
	case config.BackendSQLite:
		kvs, err = kv.OpenSQLite(dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s store for instance %q: %w", cfg.Backend, instance, err)
	}
	return survey.New(kvs), nil
}

func serverInstructions() string {
	return `SurveyMesh is a crowdsourced survey platform backed by an embedded
key-value store. Creators publish surveys with token rewards; respondents
submit free-text answers tied to a wallet address.

Typical flow:
  1. survey_create          — publish a survey (title, questions, reward, target)
  2. survey_submit_response — record a respondent's answers; if no status is
     given, answers are auto-classified by length
  3. survey_stats           — aggregate totals, valid-wallet set, average score
  4. survey_valid_wallets   — just the deduplicated wallets behind VALID responses

answer_evaluate previews the length-based classification without storing
anything. creator_surveys lists a creator's surveys, optionally with stats.

All tools accept an optional "session" argument that routes the call to an
isolated storage instance; omit it to use the shared default instance.`
}
