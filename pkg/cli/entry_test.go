package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/defsub/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGolden runs every testdata/*.def through Run and compares stdout with
// the .want file and stderr with the .err file (empty if there is none).
func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.def"))
	require.NoError(t, err)
	if len(files) == 0 {
		t.Skip("No test files found")
	}

	for _, file := range files {
		if !config.HasSourceExt(file) {
			continue
		}
		base := config.TrimSourceExt(file)
		t.Run(filepath.Base(base), func(t *testing.T) {
			want, err := os.ReadFile(base + ".want")
			require.NoError(t, err)
			wantErr, err := os.ReadFile(base + ".err")
			if err != nil && !os.IsNotExist(err) {
				t.Fatal(err)
			}

			var stdout, stderr bytes.Buffer
			code := Run([]string{"-n", "-c", filepath.Join("testdata", "empty.yaml"), file}, nil, &stdout, &stderr)

			assert.Equal(t, string(want), stdout.String())
			assert.Equal(t, string(wantErr), stderr.String())
			wantCode := ExitOK
			if strings.Contains(string(wantErr), "error:") {
				wantCode = ExitFailure
			}
			assert.Equal(t, wantCode, code)
		})
	}
}

func TestParseArgs(t *testing.T) {
	opts, err := ParseArgs([]string{"-o", "out.txt", "-D", "A=1", "-D", "B", "-c", "x.yaml", "-p", "-d", "-n", "in1.def", "in2.def"})
	require.NoError(t, err)

	assert.Equal(t, "out.txt", opts.OutputPath)
	assert.Equal(t, "x.yaml", opts.ConfigPath)
	assert.Equal(t, []string{"A=1", "B"}, opts.Defines)
	assert.True(t, opts.Dump)
	assert.True(t, opts.Debug)
	assert.True(t, opts.NoColor)
	assert.False(t, opts.Help)
	assert.Equal(t, []string{"in1.def", "in2.def"}, opts.Inputs)
}

func TestParseArgsNoOptions(t *testing.T) {
	opts, err := ParseArgs([]string{"a.def"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.def"}, opts.Inputs)

	opts, err = ParseArgs(nil)
	require.NoError(t, err)
	assert.Empty(t, opts.Inputs)
}

func TestRunUnknownOption(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"-z"}, nil, &stdout, &stderr)
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr.String(), "usage: defsub")
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"-h"}, nil, &stdout, &stderr)
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout.String(), "usage: defsub")
}

func run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"-n", "-c", filepath.Join("testdata", "empty.yaml")}, args...)
	code := Run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunStdin(t *testing.T) {
	code, out, errOut := run(t, "#define A 1\nA+A\n")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "\n1+1\n", out)
	assert.Empty(t, errOut)

	code, out, _ = run(t, "#define A 2\nA\n", "-")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "\n2\n", out)
}

func TestRunCommandLineDefines(t *testing.T) {
	code, out, errOut := run(t, "N S FLAG AL\n", "-D", "N=3", "-D", `S="two words"`, "-D", "FLAG", "-D", "AL=N")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "3 two words 1 3\n", out)
	assert.Empty(t, errOut)
}

func TestRunBadDefine(t *testing.T) {
	for _, raw := range []string{"1X=2", "X=1 2", "=3"} {
		code, _, errOut := run(t, "", "-D", raw)
		assert.Equal(t, ExitUsage, code, raw)
		assert.Contains(t, errOut, "-D "+raw, raw)
	}
}

func TestRunConfigDefines(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
color: never
defines:
  - name: WIDTH
    int: 80
  - name: W
    alias: WIDTH
  - name: TITLE
    str: Report
`), 0o644))

	var stdout, stderr bytes.Buffer
	code := Run([]string{"-c", cfgPath, "-D", "WIDTH=100"}, strings.NewReader("W TITLE\n"), &stdout, &stderr)
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "100 Report\n", stdout.String())
	assert.Equal(t, "Warning: redefinition of WIDTH to 100 at line 0\n", stderr.String())
}

func TestRunInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("defines:\n  - name: A\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := Run([]string{"-c", cfgPath}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr.String(), "one of int, str, or alias is required")
}

func TestRunFindsConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName),
		[]byte("color: never\ndefines:\n  - name: FOUND\n    str: \"yes\"\n"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	var stdout, stderr bytes.Buffer
	code := Run(nil, strings.NewReader("FOUND\n"), &stdout, &stderr)
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "yes\n", stdout.String())
}

func TestRunSharedTableAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.def")
	second := filepath.Join(dir, "second.def")
	require.NoError(t, os.WriteFile(first, []byte("#define A B\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("#define B 7\nA\n"), 0o644))

	code, out, errOut := run(t, "", first, second)
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "\n\n7\n", out)
	assert.Empty(t, errOut)
}

func TestRunMissingFile(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "ok.def")
	require.NoError(t, os.WriteFile(ok, []byte("#define A 1\nA\n"), 0o644))

	code, out, errOut := run(t, "", filepath.Join(dir, "missing.def"), ok)
	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, "\n1\n", out)
	assert.Contains(t, errOut, "error:")
	assert.Contains(t, errOut, "missing.def")
}

func TestRunOutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.txt")
	code, stdout, _ := run(t, "#define A \"x\"\nA\n", "-o", outPath)
	assert.Equal(t, ExitOK, code)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "\nx\n", string(data))
}

func TestRunDump(t *testing.T) {
	code, _, errOut := run(t, "#define A 1\n#define B C\n#define C B\n", "-p")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, errOut, "key=A, type=INT_CONST, value=1, in_cycle=false")
	assert.Contains(t, errOut, "key=B, type=ID, value=C, in_cycle=true")
	assert.Contains(t, errOut, "key=C, type=ID, value=B, in_cycle=true")
}

func TestRunDebugTrace(t *testing.T) {
	code, out, errOut := run(t, "#define A 1\nA\n", "-d")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "\n1\n", out)
	assert.Contains(t, errOut, "defined symbol")
	assert.Contains(t, errOut, "substituting")
}
