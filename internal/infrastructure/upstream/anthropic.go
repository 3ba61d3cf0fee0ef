// Package upstream 把网关请求转发到 Anthropic Messages API
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"writemaster-api/internal/config"
	"writemaster-api/internal/domain/service"
	apperrors "writemaster-api/pkg/errors"
	"writemaster-api/pkg/logger"
	"writemaster-api/pkg/metrics"
	"writemaster-api/pkg/tracer"
)

const messagesPath = "/v1/messages"

// 用量流水中的 workflow 取值
const (
	WorkflowCompletion = "completion"
	WorkflowResearch   = "research"
)

// ErrInvalidResponse 上游返回了成功状态但响应体不是 JSON
var ErrInvalidResponse = apperrors.New(apperrors.CodeLLMProviderError, "invalid JSON in upstream response")

// Request 经过网关校验的调用参数。Messages 与 Tools 原样透传。
type Request struct {
	APIKey   string
	Messages json.RawMessage
	System   string
	Tools    []json.RawMessage
}

// Result 上游原始状态码与响应体
type Result struct {
	Status int
	Body   []byte
}

// OK 上游是否返回 2xx
func (r *Result) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

type messagesRequest struct {
	Model     string            `json:"model"`
	MaxTokens int               `json:"max_tokens"`
	System    string            `json:"system,omitempty"`
	Messages  json.RawMessage   `json:"messages"`
	Tools     []json.RawMessage `json:"tools,omitempty"`
}

type messagesUsage struct {
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type messagesError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client Messages API 客户端，模型与 max_tokens 只取自服务端配置
type Client struct {
	cfg        config.UpstreamConfig
	endpoint   string
	httpClient *http.Client
	recorder   service.LLMUsageRecorder
}

// NewClient 创建上游客户端；recorder 可为 nil
func NewClient(cfg *config.UpstreamConfig, recorder service.LLMUsageRecorder) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	return NewClientWithHTTP(cfg, &http.Client{Timeout: timeout}, recorder)
}

func NewClientWithHTTP(cfg *config.UpstreamConfig, httpClient *http.Client, recorder service.LLMUsageRecorder) *Client {
	return &Client{
		cfg:        *cfg,
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + messagesPath,
		httpClient: httpClient,
		recorder:   recorder,
	}
}

// Forward 发送一次 Messages 调用并返回上游原始结果。
// 非 2xx 不视为错误，由调用方按状态码透传；只有网络失败与 2xx 非 JSON 响应返回 error。
func (c *Client) Forward(ctx context.Context, req *Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "upstream.Forward")
	defer span.End()

	research := len(req.Tools) > 0
	workflow := WorkflowCompletion
	if research {
		workflow = WorkflowResearch
	}
	span.SetAttributes(
		attribute.String("llm.provider", c.cfg.Provider),
		attribute.String("llm.model", c.cfg.Model),
		attribute.String("llm.workflow", workflow),
	)

	payload := &messagesRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		System:    req.System,
		Messages:  req.Messages,
	}
	if research {
		payload.Tools = req.Tools
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to marshal messages request: "+err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to create messages request: "+err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", req.APIKey)
	httpReq.Header.Set("anthropic-version", c.cfg.APIVersion)
	if research && c.cfg.BetaHeader != "" {
		httpReq.Header.Set("anthropic-beta", c.cfg.BetaHeader)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.observe(ctx, workflow, 0, nil, time.Since(start))
		tracer.RecordError(span, err)
		return nil, apperrors.Wrap(err, apperrors.CodeLLMProviderError, "upstream request failed: "+err.Error())
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	duration := time.Since(start)
	if err != nil {
		c.observe(ctx, workflow, httpResp.StatusCode, nil, duration)
		tracer.RecordError(span, err)
		return nil, apperrors.Wrap(err, apperrors.CodeLLMProviderError, "failed to read upstream response: "+err.Error())
	}

	result := &Result{Status: httpResp.StatusCode, Body: raw}
	span.SetAttributes(attribute.Int("http.status_code", result.Status))
	c.observe(ctx, workflow, result.Status, raw, duration)

	if result.OK() && !json.Valid(raw) {
		tracer.RecordError(span, ErrInvalidResponse)
		return nil, ErrInvalidResponse
	}
	return result, nil
}

func (c *Client) observe(ctx context.Context, workflow string, status int, body []byte, duration time.Duration) {
	provider, model := c.cfg.Provider, c.cfg.Model
	outcome := "success"
	if status < 200 || status >= 300 {
		outcome = "error"
	}
	metrics.LLMCallTotal.WithLabelValues(provider, model, outcome).Inc()
	metrics.LLMCallDuration.WithLabelValues(provider, model).Observe(duration.Seconds())

	var usage messagesUsage
	if outcome == "success" && len(body) > 0 {
		_ = json.Unmarshal(body, &usage)
	}
	prompt, completion := usage.Usage.InputTokens, usage.Usage.OutputTokens
	if prompt > 0 {
		metrics.LLMTokensUsed.WithLabelValues(provider, model, "prompt").Add(float64(prompt))
	}
	if completion > 0 {
		metrics.LLMTokensUsed.WithLabelValues(provider, model, "completion").Add(float64(completion))
	}

	logger.Info(ctx, "upstream call finished",
		"provider", provider,
		"model", model,
		"workflow", workflow,
		"status", strconv.Itoa(status),
		"prompt_tokens", prompt,
		"completion_tokens", completion,
		"duration_ms", duration.Milliseconds(),
	)

	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(ctx, service.LLMUsageInput{
		Workflow:         workflow,
		Provider:         provider,
		Model:            model,
		Status:           status,
		PromptTokens:     prompt,
		CompletionTokens: completion,
		DurationMs:       int(duration.Milliseconds()),
	}); err != nil {
		logger.Warn(ctx, "failed to record llm usage", "error", err.Error())
	}
}

// ErrorMessage 从上游错误响应中提取提示文本，无法解析时返回 "API error: <status>"
func ErrorMessage(status int, body []byte) string {
	var e messagesError
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return fmt.Sprintf("API error: %d", status)
}
