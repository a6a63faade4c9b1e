// Package cli is the defsub command: option parsing, configuration and the
// run loop over input files.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/funvibe/defsub/internal/config"
	"github.com/funvibe/defsub/internal/diagnostics"
	"github.com/funvibe/defsub/internal/lexer"
	"github.com/funvibe/defsub/internal/pipeline"
	"github.com/funvibe/defsub/internal/preprocessor"
	"github.com/funvibe/defsub/internal/symbols"
	"github.com/funvibe/defsub/internal/token"
	"github.com/funvibe/defsub/internal/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

const usage = `usage: defsub [-c config] [-o output] [-D NAME[=VALUE]]... [-d] [-n] [-p] [file...]

  -c config   read predefines from config (default: nearest defsub.yaml)
  -o output   write to output instead of stdout
  -D NAME=V   define NAME before any input; V is an integer, "string" or identifier
  -d          trace symbol table activity to stderr
  -n          never color diagnostics
  -p          print the symbol table to stderr when done
  -h          show this help
`

// Options is the parsed command line.
type Options struct {
	ConfigPath string
	OutputPath string
	Defines    []string
	Debug      bool
	NoColor    bool
	Dump       bool
	Help       bool
	Inputs     []string
}

// ParseArgs parses args, not including the program name.
func ParseArgs(args []string) (*Options, error) {
	opts, optind, err := getopt.Getopts(append([]string{"defsub"}, args...), "c:o:D:dnph")
	if err != nil {
		return nil, err
	}

	o := &Options{}
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			o.ConfigPath = opt.Value
		case 'o':
			o.OutputPath = opt.Value
		case 'D':
			o.Defines = append(o.Defines, opt.Value)
		case 'd':
			o.Debug = true
		case 'n':
			o.NoColor = true
		case 'p':
			o.Dump = true
		case 'h':
			o.Help = true
		}
	}
	o.Inputs = args[optind-1:]
	return o, nil
}

// Run executes defsub and returns the process exit status.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := ParseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "defsub: %s\n%s", err, usage)
		return ExitUsage
	}
	if opts.Help {
		fmt.Fprint(stdout, usage)
		return ExitOK
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "defsub: %s\n", err)
		return ExitUsage
	}

	mode := cfg.ColorMode()
	if opts.NoColor {
		mode = diagnostics.ColorNever
	}
	printer := diagnostics.NewPrinter(stderr, mode)

	logger := zap.NewNop()
	if opts.Debug {
		logger = newDebugLogger(stderr)
	}
	defer func() { _ = logger.Sync() }()

	table := symbols.NewTable(symbols.WithReporter(printer), symbols.WithLogger(logger))
	for _, d := range cfg.Defines {
		table.Define(d.Name, configValue(d), 0)
	}
	for _, raw := range opts.Defines {
		name, value, err := parseDefine(raw)
		if err != nil {
			fmt.Fprintf(stderr, "defsub: -D %s: %s\n", raw, err)
			return ExitUsage
		}
		table.Define(name, value, 0)
	}

	out := stdout
	if opts.OutputPath != "" {
		f, err := os.Create(opts.OutputPath)
		if err != nil {
			fmt.Fprintf(stderr, "defsub: %s\n", err)
			return ExitFailure
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)

	inputs := opts.Inputs
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	failed := false
	p := pipeline.New(&lexer.LexerProcessor{}, &preprocessor.Processor{})
	for _, path := range inputs {
		src, err := readSource(path, stdin)
		if err != nil {
			printer.Error(0, err)
			failed = true
			continue
		}
		logger.Debug("processing source", zap.String("source", utils.SourceName(path)), zap.Int("bytes", len(src)))
		ctx := p.Run(pipeline.NewPipelineContext(utils.SourceName(path), src, table, printer, w))
		if err := ctx.Err(); err != nil {
			printer.Error(0, err)
			failed = true
		}
	}

	if err := w.Flush(); err != nil {
		printer.Error(0, fmt.Errorf("writing output: %w", err))
		failed = true
	}

	if opts.Dump {
		if err := table.Dump(stderr); err != nil {
			failed = true
		}
	}

	if failed {
		return ExitFailure
	}
	return ExitOK
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := utils.FindConfig(".")
		if err != nil {
			return nil, err
		}
		if found == "" {
			return &config.Config{}, nil
		}
		path = found
	}
	return config.LoadConfig(path)
}

func configValue(d config.Define) symbols.Value {
	switch {
	case d.Int != nil:
		return symbols.IntValue{V: *d.Int}
	case d.Str != nil:
		return symbols.StrValue{V: *d.Str}
	default:
		return symbols.AliasValue{Target: *d.Alias}
	}
}

// parseDefine splits a -D argument. A bare NAME is bound to
// config.DefaultDefineValue.
func parseDefine(raw string) (string, symbols.Value, error) {
	name, text, hasValue := strings.Cut(raw, "=")
	if !token.IsIdentifier(name) {
		return "", nil, fmt.Errorf("%q is not an identifier", name)
	}
	if !hasValue {
		return name, symbols.IntValue{V: config.DefaultDefineValue}, nil
	}
	value, err := preprocessor.ParseValue(text)
	if err != nil {
		return "", nil, err
	}
	return name, value, nil
}

func readSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		if stdin == nil {
			return "", errors.New("no standard input")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newDebugLogger(w io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}
