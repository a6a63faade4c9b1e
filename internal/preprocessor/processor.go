package preprocessor

import (
	"fmt"

	"github.com/funvibe/defsub/internal/pipeline"
)

// Processor runs the preprocessor as a pipeline stage over ctx.Tokens.
type Processor struct{}

func (pp *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if err := New(ctx.Table, ctx.Reporter, ctx.Output).Run(ctx.Tokens); err != nil {
		ctx.Errors = append(ctx.Errors, fmt.Errorf("%s: %w", ctx.SourceName, err))
	}
	return ctx
}
