package server

import "github.com/viant/mcp-protocol/schema"

const contentTypeText = "text"

// NewTextResult returns a tool result holding a single text element.
func NewTextResult(text string) *schema.CallToolResult {
	return &schema.CallToolResult{
		Content: []schema.CallToolResultContentElem{schema.TextContent{Type: contentTypeText, Text: text}},
	}
}

// NewErrorResult returns a text result flagged as a tool execution failure.
func NewErrorResult(text string) *schema.CallToolResult {
	isError := true
	ret := NewTextResult(text)
	ret.IsError = &isError
	return ret
}
