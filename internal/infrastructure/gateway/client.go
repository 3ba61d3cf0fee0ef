// Package gateway 提供访问 API 网关 /api/generate 的客户端
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"writemaster-api/internal/config"
	wfmodel "writemaster-api/internal/workflow/model"
	"writemaster-api/internal/workflow/node"
	"writemaster-api/internal/workflow/port"
	apperrors "writemaster-api/pkg/errors"
	"writemaster-api/pkg/logger"
	"writemaster-api/pkg/tracer"
)

const generatePath = "/api/generate"

// 错误预览最多保留的字符数
const invalidJSONPreview = 100

var _ port.Completer = (*Client)(nil)

type Client struct {
	endpoint   string
	httpClient *http.Client
}

type generateRequest struct {
	APIKey   string            `json:"apiKey"`
	Messages []wfmodel.Message `json:"messages"`
	System   string            `json:"system,omitempty"`
	Tools    []wfmodel.Tool    `json:"tools,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

func NewClient(cfg *config.GatewayClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	return NewClientWithHTTP(cfg.URL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP 使用自定义 http.Client，baseURL 为网关根地址
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		endpoint:   resolveEndpoint(baseURL),
		httpClient: httpClient,
	}
}

func resolveEndpoint(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Path == "" || u.Path == "/" {
		return base + generatePath
	}
	return base
}

// Complete 发送一次网关调用。
// 网络失败、空响应、非 JSON 响应与非 2xx 状态都以 CodeLLMCallFailed 返回，Message 即展示给用户的文本。
func (c *Client) Complete(ctx context.Context, req wfmodel.CompletionRequest) (*wfmodel.CompletionResponse, error) {
	ctx, span := tracer.Start(ctx, "gateway.Complete")
	defer span.End()
	span.SetAttributes(
		attribute.Int("gateway.messages", len(req.Messages)),
		attribute.Int("gateway.tools", len(req.Tools)),
	)

	body, err := json.Marshal(&generateRequest{
		APIKey:   req.APIKey,
		Messages: req.Messages,
		System:   req.System,
		Tools:    req.Tools,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeLLMCallFailed, fmt.Sprintf("Network error: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeLLMCallFailed, fmt.Sprintf("Network error: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, apperrors.Wrap(err, apperrors.CodeLLMCallFailed, fmt.Sprintf("Network error: %v", err))
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, apperrors.Wrap(err, apperrors.CodeLLMCallFailed, fmt.Sprintf("Network error: %v", err))
	}
	status := httpResp.StatusCode
	span.SetAttributes(attribute.Int("http.status_code", status))
	logger.Debug(ctx, "gateway call finished",
		"status", status,
		"bytes", len(raw),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if len(raw) == 0 {
		err := apperrors.New(apperrors.CodeLLMCallFailed, fmt.Sprintf("Empty response (status: %d)", status)).WithStatus(status)
		tracer.RecordError(span, err)
		return nil, err
	}

	if !json.Valid(raw) {
		err := apperrors.New(apperrors.CodeLLMCallFailed, "Invalid JSON: "+node.TruncateByRunes(string(raw), invalidJSONPreview)).WithStatus(status)
		tracer.RecordError(span, err)
		return nil, err
	}

	if status < 200 || status >= 300 {
		msg := fmt.Sprintf("API error: %d", status)
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
			msg = eb.Error
		}
		err := apperrors.New(apperrors.CodeLLMCallFailed, msg).WithStatus(status)
		tracer.RecordError(span, err)
		return nil, err
	}

	var resp wfmodel.CompletionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		err := apperrors.Wrap(err, apperrors.CodeLLMCallFailed, "Invalid JSON: "+node.TruncateByRunes(string(raw), invalidJSONPreview)).WithStatus(status)
		tracer.RecordError(span, err)
		return nil, err
	}
	return &resp, nil
}
