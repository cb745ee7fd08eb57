package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/surveymesh/surveymesh/internal/router"
	"github.com/surveymesh/surveymesh/internal/survey"
)

// CreateSurveyTool handles the survey_create MCP tool.
type CreateSurveyTool struct {
	registry *router.Registry
}

// NewCreateSurveyTool creates a CreateSurveyTool routed through the
// given registry.
func NewCreateSurveyTool(registry *router.Registry) *CreateSurveyTool {
	return &CreateSurveyTool{registry: registry}
}

// Definition returns the MCP tool definition for survey_create.
func (t *CreateSurveyTool) Definition() mcp.Tool {
	return mcp.NewTool("survey_create",
		mcp.WithDescription(
			"Create a new survey with a question list, reward budget, and target response count. "+
				"Returns the stored survey record including its generated id.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Survey title (non-empty)"),
		),
		mcp.WithString("description",
			mcp.Description("Optional free-text description"),
		),
		mcp.WithArray("questions",
			mcp.Required(),
			mcp.Description("Ordered list of question strings (at least one)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("creator_wallet",
			mcp.Required(),
			mcp.Description("Creator wallet address; used as an exact-match filter in creator listings"),
		),
		mcp.WithNumber("total_reward",
			mcp.Required(),
			mcp.Description("Total reward budget (positive)"),
		),
		mcp.WithNumber("target_responses",
			mcp.Required(),
			mcp.Description("Target response count (positive integer)"),
		),
		sessionParam(),
	)
}

type createSurveyResult struct {
	Ok     bool           `json:"ok"`
	Survey *survey.Survey `json:"survey"`
}

// Handle processes the survey_create tool call.
func (t *CreateSurveyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, errRes := resolveStore(t.registry, req)
	if errRes != nil {
		return errRes, nil
	}

	reward, _ := floatArg(req, "total_reward")
	sv, err := store.CreateSurvey(ctx, survey.CreateSurveyParams{
		Title:           req.GetString("title", ""),
		Description:     req.GetString("description", ""),
		Questions:       stringSliceArg(req, "questions"),
		CreatorWallet:   req.GetString("creator_wallet", ""),
		TotalReward:     reward,
		TargetResponses: intArg(req, "target_responses", 0),
	})
	if err != nil {
		return domainError(err), nil
	}

	return okResult(createSurveyResult{Ok: true, Survey: sv})
}
