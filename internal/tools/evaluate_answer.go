package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/surveymesh/surveymesh/internal/survey"
)

// EvaluateAnswerTool handles the answer_evaluate MCP tool. It is purely
// advisory: it never touches storage, and submitting a response does not
// require calling it first.
type EvaluateAnswerTool struct {
	thresholds survey.Thresholds
}

// NewEvaluateAnswerTool creates an EvaluateAnswerTool with the given
// thresholds.
func NewEvaluateAnswerTool(thresholds survey.Thresholds) *EvaluateAnswerTool {
	return &EvaluateAnswerTool{thresholds: thresholds}
}

// Definition returns the MCP tool definition for answer_evaluate.
func (t *EvaluateAnswerTool) Definition() mcp.Tool {
	return mcp.NewTool("answer_evaluate",
		mcp.WithDescription(
			"Classify free-text answer length into a verdict (VALID/REJECTED) and score. "+
				"Advisory only — use it before survey_submit_response, or let that tool run it for you.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The answer text to evaluate"),
		),
	)
}

type evaluateAnswerResult struct {
	Ok bool `json:"ok"`
	survey.Evaluation
}

// Handle processes the answer_evaluate tool call.
func (t *EvaluateAnswerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, ok := req.GetArguments()["text"].(string)
	if !ok {
		return errResult("'text' is required"), nil
	}

	ev := survey.Evaluate(text, t.thresholds)
	return okResult(evaluateAnswerResult{Ok: true, Evaluation: ev})
}
