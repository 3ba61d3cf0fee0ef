package writer

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"writemaster-api/internal/workflow/catalog"
	wfmodel "writemaster-api/internal/workflow/model"
	workflowport "writemaster-api/internal/workflow/port"
	"writemaster-api/internal/workflow/prompt"
	apperrors "writemaster-api/pkg/errors"
	"writemaster-api/pkg/metrics"
	"writemaster-api/pkg/tracer"
)

// RefineInput 润色参数
type RefineInput struct {
	APIKey      string
	Content     string
	Instruction string
	FormatID    string
	StyleID     string
	ToneID      string
}

type Refiner struct {
	completer workflowport.Completer
	prompts   *prompt.Assembler
}

func NewRefiner(completer workflowport.Completer, prompts *prompt.Assembler) *Refiner {
	if prompts == nil {
		prompts = prompt.NewAssembler(nil)
	}
	return &Refiner{
		completer: completer,
		prompts:   prompts,
	}
}

// Refine 按指令改写已有内容，只发起一次调用
func (r *Refiner) Refine(ctx context.Context, in *RefineInput) (string, error) {
	if r == nil || r.completer == nil {
		return "", apperrors.New(apperrors.CodeInternalError, "refiner not configured")
	}
	if in == nil {
		return "", apperrors.New(apperrors.CodeInvalidParam, "input is nil")
	}

	ctx, span := tracer.Start(ctx, "writer.Refine")
	defer span.End()
	span.SetAttributes(attribute.String("format_id", in.FormatID))

	userPrompt, err := r.prompts.BuildRefinementPrompt(in.Content, in.Instruction, in.FormatID, in.StyleID, in.ToneID)
	if err != nil {
		tracer.RecordError(span, err)
		return "", apperrors.Wrap(err, apperrors.CodeRefinementFailed, "failed to build prompt")
	}

	formatID := catalog.ResolveFormat(in.FormatID).ID
	resp, err := r.completer.Complete(ctx, wfmodel.UserPrompt(in.APIKey, userPrompt, prompt.SystemPrompt()))
	if err != nil {
		tracer.RecordError(span, err)
		metrics.ContentRefinementTotal.WithLabelValues(formatID, "error").Inc()
		return "", err
	}

	metrics.ContentRefinementTotal.WithLabelValues(formatID, "success").Inc()
	return wfmodel.ExtractText(resp), nil
}
