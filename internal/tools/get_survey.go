package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/surveymesh/surveymesh/internal/router"
	"github.com/surveymesh/surveymesh/internal/survey"
)

// GetSurveyTool handles the survey_get MCP tool.
type GetSurveyTool struct {
	registry *router.Registry
}

// NewGetSurveyTool creates a GetSurveyTool.
func NewGetSurveyTool(registry *router.Registry) *GetSurveyTool {
	return &GetSurveyTool{registry: registry}
}

// Definition returns the MCP tool definition for survey_get.
func (t *GetSurveyTool) Definition() mcp.Tool {
	return mcp.NewTool("survey_get",
		mcp.WithDescription("Fetch a survey record by id."),
		mcp.WithString("survey_id",
			mcp.Required(),
			mcp.Description("The survey id returned by survey_create"),
		),
		sessionParam(),
	)
}

type getSurveyResult struct {
	Ok     bool           `json:"ok"`
	Survey *survey.Survey `json:"survey"`
}

// Handle processes the survey_get tool call.
func (t *GetSurveyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, errRes := resolveStore(t.registry, req)
	if errRes != nil {
		return errRes, nil
	}

	sv, err := store.GetSurvey(ctx, req.GetString("survey_id", ""))
	if err != nil {
		return domainError(err), nil
	}
	return okResult(getSurveyResult{Ok: true, Survey: sv})
}
