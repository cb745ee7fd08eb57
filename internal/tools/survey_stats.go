package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/surveymesh/surveymesh/internal/router"
	"github.com/surveymesh/surveymesh/internal/survey"
)

// SurveyStatsTool handles the survey_stats MCP tool.
type SurveyStatsTool struct {
	registry *router.Registry
}

// NewSurveyStatsTool creates a SurveyStatsTool.
func NewSurveyStatsTool(registry *router.Registry) *SurveyStatsTool {
	return &SurveyStatsTool{registry: registry}
}

// Definition returns the MCP tool definition for survey_stats.
func (t *SurveyStatsTool) Definition() mcp.Tool {
	return mcp.NewTool("survey_stats",
		mcp.WithDescription(
			"Aggregate statistics for one survey: total responses, deduplicated valid-wallet set, "+
				"and mean score over valid responses. Scans the survey's entire response set.",
		),
		mcp.WithString("survey_id",
			mcp.Required(),
			mcp.Description("Id of the survey to aggregate"),
		),
		sessionParam(),
	)
}

type surveyStatsResult struct {
	Ok    bool          `json:"ok"`
	Stats *survey.Stats `json:"stats"`
}

// Handle processes the survey_stats tool call.
func (t *SurveyStatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, errRes := resolveStore(t.registry, req)
	if errRes != nil {
		return errRes, nil
	}

	stats, err := store.StatsForSurvey(ctx, req.GetString("survey_id", ""))
	if err != nil {
		return domainError(err), nil
	}
	return okResult(surveyStatsResult{Ok: true, Stats: stats})
}
