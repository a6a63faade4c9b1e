package lexer

import "github.com/funvibe/defsub/internal/pipeline"

// LexerProcessor fills ctx.Tokens from ctx.Source. Unterminated literals are
// left in the stream as ILLEGAL tokens for the next stage to report.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Tokens, _ = Tokenize(ctx.Source)
	return ctx
}
