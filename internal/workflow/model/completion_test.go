package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	resp := &CompletionResponse{Content: []ContentBlock{
		{Type: "text", Text: "first"},
		{Type: "server_tool_use"},
		{Type: "web_search_tool_result"},
		{Type: "text", Text: "second"},
	}}
	assert.Equal(t, "first\nsecond", ExtractText(resp))
}

func TestExtractText_Empty(t *testing.T) {
	assert.Equal(t, "", ExtractText(nil))
	assert.Equal(t, "", ExtractText(&CompletionResponse{}))
	assert.Equal(t, "", ExtractText(&CompletionResponse{Content: []ContentBlock{{Type: "tool_use"}}}))
}

func TestUserPrompt(t *testing.T) {
	req := UserPrompt("sk", "hello", "sys")
	assert.Equal(t, []Message{{Role: RoleUser, Content: "hello"}}, req.Messages)
	assert.Empty(t, req.Tools)

	req = UserPrompt("sk", "hello", "sys", WebSearchTool)
	assert.Equal(t, []Tool{{Type: "web_search_20250305", Name: "web_search"}}, req.Tools)
}
