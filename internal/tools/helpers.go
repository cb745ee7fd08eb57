// Package tools implements the MCP tool handlers for the survey store.
//
// Each tool is a struct that receives its dependencies via constructor
// and exposes Definition() plus a Handle compatible with mcp-go's
// CallToolRequest signature. One file per tool.
//
// Every tool accepts an optional "session" argument; the router resolves
// it to the store instance owning that session's key namespace. Results
// are JSON payloads shaped {"ok":true,...} on success; failures carry
// {"ok":false,"error":...} with the MCP error flag set.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/surveymesh/surveymesh/internal/router"
	"github.com/surveymesh/surveymesh/internal/survey"
)

// okResult marshals a success payload. The payload struct carries its
// own Ok field so the wire shape stays explicit in each tool.
func okResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return errResult(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errResult builds an error result whose content is the structured
// {"ok":false,"error":...} record.
func errResult(msg string) *mcp.CallToolResult {
	data, _ := json.Marshal(map[string]any{"ok": false, "error": msg})
	return mcp.NewToolResultError(string(data))
}

// domainError maps domain failures onto tool errors, keeping not-found
// and validation messages terse for the caller.
func domainError(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, survey.ErrSurveyNotFound):
		return errResult(err.Error())
	case errors.Is(err, survey.ErrInvalidInput):
		return errResult(err.Error())
	default:
		return errResult(fmt.Sprintf("storage failure: %v", err))
	}
}

// sessionParam is the shared "session" argument added to every tool.
func sessionParam() mcp.ToolOption {
	return mcp.WithString("session",
		mcp.Description("Optional session identifier selecting the store instance. Defaults to the shared instance."),
	)
}

// resolveStore routes the request to its store instance. A non-nil
// second return is the error result to send back.
func resolveStore(reg *router.Registry, req mcp.CallToolRequest) (*survey.Store, *mcp.CallToolResult) {
	store, err := reg.Resolve(req.GetString("session", ""))
	if err != nil {
		return nil, errResult(err.Error())
	}
	return store, nil
}

// stringSliceArg extracts a string-array argument. JSON arrays arrive as
// []interface{}; anything else yields nil.
func stringSliceArg(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}

// floatArg extracts a numeric argument, reporting whether it was present
// (JSON numbers arrive as float64).
func floatArg(req mcp.CallToolRequest, key string) (float64, bool) {
	v, ok := req.GetArguments()[key].(float64)
	return v, ok
}

// intArg extracts an integer argument, returning defaultVal if the key
// is missing or not a number.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}
