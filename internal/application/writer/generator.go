// Package writer 实现内容生成与润色两个应用服务。
package writer

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"writemaster-api/internal/workflow/catalog"
	wfmodel "writemaster-api/internal/workflow/model"
	workflowport "writemaster-api/internal/workflow/port"
	"writemaster-api/internal/workflow/prompt"
	apperrors "writemaster-api/pkg/errors"
	"writemaster-api/pkg/logger"
	"writemaster-api/pkg/metrics"
	"writemaster-api/pkg/tracer"
)

// GenerateInput 生成参数；ToneID 为空表示不叠加语气
type GenerateInput struct {
	APIKey   string
	Idea     string
	FormatID string
	StyleID  string
	ToneID   string
}

type Generator struct {
	completer workflowport.Completer
	prompts   *prompt.Assembler
}

func NewGenerator(completer workflowport.Completer, prompts *prompt.Assembler) *Generator {
	if prompts == nil {
		prompts = prompt.NewAssembler(nil)
	}
	return &Generator{
		completer: completer,
		prompts:   prompts,
	}
}

// Generate 生成一条内容。
// 需要研究的格式会先发起一次带网页搜索的研究调用，研究失败只记录告警，不影响主调用。
func (g *Generator) Generate(ctx context.Context, in *GenerateInput) (string, error) {
	if g == nil || g.completer == nil {
		return "", apperrors.New(apperrors.CodeInternalError, "generator not configured")
	}
	if in == nil {
		return "", apperrors.New(apperrors.CodeInvalidParam, "input is nil")
	}

	ctx = logger.WithContext(ctx, logger.FormatIDKey, in.FormatID)
	ctx, span := tracer.Start(ctx, "writer.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("format_id", in.FormatID),
		attribute.String("style_id", in.StyleID),
		attribute.String("tone_id", in.ToneID),
	)

	format := catalog.ResolveFormat(in.FormatID)

	var research string
	if format.RequiresResearch {
		research = g.research(ctx, in)
	}

	userPrompt, err := g.prompts.BuildGenerationPrompt(in.Idea, in.FormatID, in.StyleID, in.ToneID)
	if err != nil {
		tracer.RecordError(span, err)
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "failed to build prompt")
	}
	if userPrompt, err = g.prompts.WrapResearchContext(research, userPrompt); err != nil {
		tracer.RecordError(span, err)
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "failed to build prompt")
	}

	resp, err := g.completer.Complete(ctx, wfmodel.UserPrompt(in.APIKey, userPrompt, prompt.SystemPrompt()))
	if err != nil {
		tracer.RecordError(span, err)
		metrics.ContentGenerationTotal.WithLabelValues(format.ID, "error").Inc()
		return "", err
	}

	metrics.ContentGenerationTotal.WithLabelValues(format.ID, "success").Inc()
	span.SetAttributes(attribute.Bool("research_used", research != ""))
	return wfmodel.ExtractText(resp), nil
}

func (g *Generator) research(ctx context.Context, in *GenerateInput) string {
	ctx, span := tracer.Start(ctx, "writer.Research")
	defer span.End()

	researchPrompt, err := g.prompts.BuildResearchPrompt(in.Idea)
	if err == nil {
		var resp *wfmodel.CompletionResponse
		resp, err = g.completer.Complete(ctx, wfmodel.UserPrompt(
			in.APIKey,
			researchPrompt,
			prompt.ResearchSystemPrompt(),
			wfmodel.WebSearchTool,
		))
		if err == nil {
			return strings.TrimSpace(wfmodel.ExtractText(resp))
		}
	}

	tracer.RecordError(span, err)
	metrics.ResearchFallbackTotal.Inc()
	logger.Warn(ctx, "research failed, continuing without",
		"error", apperrors.UserMessage(err),
	)
	return ""
}

// String 输出时省略 API Key
func (in *GenerateInput) String() string {
	return fmt.Sprintf("GenerateInput{format=%s style=%s tone=%s}", in.FormatID, in.StyleID, in.ToneID)
}
