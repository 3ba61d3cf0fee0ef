// Package metrics 提供 Prometheus 指标采集功能
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "writemaster"

var (
	sizeBuckets    = prometheus.ExponentialBuckets(128, 8, 6)
	latencyBuckets = []float64{.005, .025, .1, .25, .5, 1, 2.5, 5, 15, 30, 60}
	llmBuckets     = []float64{.5, 2, 5, 10, 20, 45, 90, 180}
)

func counter(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func histogram(subsystem, name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
}

// 网关 HTTP 层
var (
	HTTPRequestsTotal   = counter("gateway", "requests_total", "Gateway requests by route and status", "method", "path", "status")
	HTTPRequestDuration = histogram("gateway", "request_seconds", "Gateway request latency", latencyBuckets, "method", "path")
	HTTPRequestSize     = histogram("gateway", "request_bytes", "Gateway request body size", sizeBuckets, "method", "path")
	HTTPResponseSize    = histogram("gateway", "response_bytes", "Gateway response body size", sizeBuckets, "method", "path")
)

// 上游 Messages API
var (
	LLMCallTotal    = counter("upstream", "calls_total", "Upstream Messages calls by outcome", "provider", "model", "status")
	LLMCallDuration = histogram("upstream", "call_seconds", "Upstream Messages call latency", llmBuckets, "provider", "model")
	// type 取 prompt 或 completion
	LLMTokensUsed = counter("upstream", "tokens_total", "Tokens reported by upstream usage blocks", "provider", "model", "type")
)

// 客户端内容生成
var (
	ContentGenerationTotal = counter("content", "generations_total", "Generated pieces by format and outcome", "format", "status")
	ContentRefinementTotal = counter("content", "refinements_total", "Refined pieces by format and outcome", "format", "status")
	ResearchFallbackTotal  = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "content",
		Name:      "research_skipped_total",
		Help:      "Research calls that failed and were skipped",
	})
)
