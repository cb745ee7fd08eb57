package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/surveymesh/surveymesh/internal/router"
	"github.com/surveymesh/surveymesh/internal/survey"
)

// SubmitResponseTool handles the survey_submit_response MCP tool.
//
// When the caller supplies no explicit status, the answer validator
// classifies the joined answer text and its verdict, score, and
// explanation are stored with the response.
type SubmitResponseTool struct {
	registry   *router.Registry
	thresholds survey.Thresholds
}

// NewSubmitResponseTool creates a SubmitResponseTool.
func NewSubmitResponseTool(registry *router.Registry, thresholds survey.Thresholds) *SubmitResponseTool {
	return &SubmitResponseTool{registry: registry, thresholds: thresholds}
}

// Definition returns the MCP tool definition for survey_submit_response.
func (t *SubmitResponseTool) Definition() mcp.Tool {
	return mcp.NewTool("survey_submit_response",
		mcp.WithDescription(
			"Submit a respondent's answers to a survey. The survey must exist. "+
				"Status, score, and explanation may be supplied directly; when status is omitted, "+
				"the answer validator classifies the combined answer text.",
		),
		mcp.WithString("survey_id",
			mcp.Required(),
			mcp.Description("Id of the survey being answered"),
		),
		mcp.WithString("wallet",
			mcp.Required(),
			mcp.Description("Respondent wallet address"),
		),
		mcp.WithArray("answers",
			mcp.Required(),
			mcp.Description("Ordered list of answer strings (at least one)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("status",
			mcp.Description("Explicit status: PENDING, VALID, or REJECTED. Omit to let the validator decide."),
		),
		mcp.WithNumber("score",
			mcp.Description("Explicit numeric score; only meaningful with an explicit status"),
		),
		mcp.WithString("explanation",
			mcp.Description("Free-text explanation for the assigned status"),
		),
		sessionParam(),
	)
}

type submitResponseResult struct {
	Ok       bool             `json:"ok"`
	Response *survey.Response `json:"response"`
}

// Handle processes the survey_submit_response tool call.
func (t *SubmitResponseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, errRes := resolveStore(t.registry, req)
	if errRes != nil {
		return errRes, nil
	}

	answers := stringSliceArg(req, "answers")
	params := survey.SubmitResponseParams{
		SurveyID:    req.GetString("survey_id", ""),
		Wallet:      req.GetString("wallet", ""),
		Answers:     answers,
		Status:      survey.Status(req.GetString("status", "")),
		Explanation: req.GetString("explanation", ""),
	}
	if v, ok := floatArg(req, "score"); ok {
		params.Score = &v
	}

	if params.Status == "" {
		ev := survey.Evaluate(strings.Join(answers, "\n"), t.thresholds)
		score := float64(ev.Score)
		params.Status = ev.Verdict
		params.Score = &score
		if params.Explanation == "" {
			params.Explanation = ev.Explanation
		}
	}

	resp, err := store.SubmitResponse(ctx, params)
	if err != nil {
		return domainError(err), nil
	}
	return okResult(submitResponseResult{Ok: true, Response: resp})
}
