package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/surveymesh/surveymesh/internal/router"
	"github.com/surveymesh/surveymesh/internal/survey"
)

// ValidWalletsTool handles the survey_valid_wallets MCP tool.
type ValidWalletsTool struct {
	registry *router.Registry
}

// NewValidWalletsTool creates a ValidWalletsTool.
func NewValidWalletsTool(registry *router.Registry) *ValidWalletsTool {
	return &ValidWalletsTool{registry: registry}
}

// Definition returns the MCP tool definition for survey_valid_wallets.
func (t *ValidWalletsTool) Definition() mcp.Tool {
	return mcp.NewTool("survey_valid_wallets",
		mcp.WithDescription(
			"List the deduplicated wallet addresses behind a survey's VALID responses, "+
				"with response and wallet counts. A reduced view of survey_stats.",
		),
		mcp.WithString("survey_id",
			mcp.Required(),
			mcp.Description("Id of the survey"),
		),
		sessionParam(),
	)
}

type validWalletsResult struct {
	Ok bool `json:"ok"`
	*survey.WalletSummary
}

// Handle processes the survey_valid_wallets tool call.
func (t *ValidWalletsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, errRes := resolveStore(t.registry, req)
	if errRes != nil {
		return errRes, nil
	}

	summary, err := store.ValidWallets(ctx, req.GetString("survey_id", ""))
	if err != nil {
		return domainError(err), nil
	}
	return okResult(validWalletsResult{Ok: true, WalletSummary: summary})
}
