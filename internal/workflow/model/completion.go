package model

import "strings"

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ContentBlockText 文本内容块类型
const ContentBlockText = "text"

// Message 对话消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Tool 上游服务端工具声明（例如网页搜索）
type Tool struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// WebSearchTool 研究调用使用的网页搜索工具
var WebSearchTool = Tool{Type: "web_search_20250305", Name: "web_search"}

// CompletionRequest 一次网关调用的输入
type CompletionRequest struct {
	APIKey   string
	Messages []Message
	System   string
	Tools    []Tool
}

// UserPrompt 构建只包含一条用户消息的请求
func UserPrompt(apiKey, prompt, system string, tools ...Tool) CompletionRequest {
	return CompletionRequest{
		APIKey:   apiKey,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
		System:   system,
		Tools:    tools,
	}
}

// ContentBlock 响应中的内容块，仅 text 类型携带 Text
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Usage 上游 token 用量
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// CompletionResponse 上游结构化响应中业务关心的部分
type CompletionResponse struct {
	ID         string         `json:"id,omitempty"`
	Model      string         `json:"model,omitempty"`
	StopReason string         `json:"stop_reason,omitempty"`
	Content    []ContentBlock `json:"content"`
	Usage      Usage          `json:"usage"`
}

// ExtractText 按顺序拼接所有 text 块，块之间以换行分隔
func ExtractText(resp *CompletionResponse) string {
	if resp == nil {
		return ""
	}
	parts := make([]string, 0, len(resp.Content))
	for _, block := range resp.Content {
		if block.Type == ContentBlockText {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}
