package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/surveymesh/surveymesh/internal/router"
	"github.com/surveymesh/surveymesh/internal/survey"
)

// CreatorSurveysTool handles the creator_surveys MCP tool.
type CreatorSurveysTool struct {
	registry *router.Registry
}

// NewCreatorSurveysTool creates a CreatorSurveysTool.
func NewCreatorSurveysTool(registry *router.Registry) *CreatorSurveysTool {
	return &CreatorSurveysTool{registry: registry}
}

// Definition returns the MCP tool definition for creator_surveys.
func (t *CreatorSurveysTool) Definition() mcp.Tool {
	return mcp.NewTool("creator_surveys",
		mcp.WithDescription(
			"List every survey created by a wallet (exact, case-sensitive match). "+
				"With with_stats, each survey carries its aggregate statistics — "+
				"this scans every matched survey's full response set.",
		),
		mcp.WithString("creator_wallet",
			mcp.Required(),
			mcp.Description("Creator wallet address to filter by"),
		),
		mcp.WithBoolean("with_stats",
			mcp.Description("Include per-survey aggregate statistics (default false)"),
		),
		sessionParam(),
	)
}

type creatorSurveysResult struct {
	Ok      bool                     `json:"ok"`
	Surveys []survey.SurveyWithStats `json:"surveys"`
}

// Handle processes the creator_surveys tool call.
func (t *CreatorSurveysTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, errRes := resolveStore(t.registry, req)
	if errRes != nil {
		return errRes, nil
	}

	wallet := req.GetString("creator_wallet", "")

	if boolArg(req, "with_stats", false) {
		surveys, err := store.SurveysByCreatorWithStats(ctx, wallet)
		if err != nil {
			return domainError(err), nil
		}
		return okResult(creatorSurveysResult{Ok: true, Surveys: surveys})
	}

	surveys, err := store.SurveysByCreator(ctx, wallet)
	if err != nil {
		return domainError(err), nil
	}
	out := make([]survey.SurveyWithStats, 0, len(surveys))
	for _, sv := range surveys {
		out = append(out, survey.SurveyWithStats{Survey: sv})
	}
	return okResult(creatorSurveysResult{Ok: true, Surveys: out})
}
