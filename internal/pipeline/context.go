package pipeline

import (
	"errors"
	"io"

	"github.com/funvibe/defsub/internal/diagnostics"
	"github.com/funvibe/defsub/internal/symbols"
	"github.com/funvibe/defsub/internal/token"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries one source through the stages. Table is shared by
// every source of a run, so definitions made by one file are visible in the
// files after it.
type PipelineContext struct {
	SourceName string
	Source     string
	Tokens     []token.Token

	Table    *symbols.Table
	Reporter diagnostics.Reporter
	Output   io.Writer

	Errors []error
}

func NewPipelineContext(name, source string, table *symbols.Table, reporter diagnostics.Reporter, out io.Writer) *PipelineContext {
	if reporter == nil {
		reporter = diagnostics.Discard
	}
	return &PipelineContext{
		SourceName: name,
		Source:     source,
		Table:      table,
		Reporter:   reporter,
		Output:     out,
	}
}

// Err joins every error collected so far, or returns nil.
func (c *PipelineContext) Err() error {
	return errors.Join(c.Errors...)
}
