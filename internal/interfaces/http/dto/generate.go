package dto

import (
	"bytes"
	"encoding/json"
)

// GenerateRequest POST /api/generate 请求体。messages 与 tools 保持原始 JSON 以便原样转发。
type GenerateRequest struct {
	APIKey   string          `json:"apiKey"`
	Messages json.RawMessage `json:"messages"`
	System   string          `json:"system"`
	Tools    json.RawMessage `json:"tools"`
}

// MessagesIsArray messages 字段存在且为 JSON 数组
func (r *GenerateRequest) MessagesIsArray() bool {
	return isJSONArray(r.Messages)
}

// ToolList 拆出 tools 数组元素；缺省、null 或非数组时返回 nil
func (r *GenerateRequest) ToolList() []json.RawMessage {
	if !isJSONArray(r.Tools) {
		return nil
	}
	var tools []json.RawMessage
	if err := json.Unmarshal(r.Tools, &tools); err != nil {
		return nil
	}
	return tools
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
