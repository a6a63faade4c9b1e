package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/defsub/internal/config"
)

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, config.ConfigFileName)
	if err := os.WriteFile(want, []byte("defines: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindConfig(nested)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFindConfigIgnoresDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, config.ConfigFileName), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := FindConfig(root)
	if err != nil {
		t.Fatal(err)
	}
	// Anything found must be outside the temp dir.
	if got == filepath.Join(root, config.ConfigFileName) {
		t.Errorf("a directory named %s must not be returned", config.ConfigFileName)
	}
}

func TestSourceName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "<stdin>"},
		{"-", "<stdin>"},
		{"./a/../b.def", "b.def"},
	}
	for _, tt := range tests {
		if got := SourceName(tt.input); got != tt.want {
			t.Errorf("SourceName(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}
