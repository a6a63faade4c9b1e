package token

import "testing"

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"A", true},
		{"_x1", true},
		{"max_len", true},
		{"", false},
		{"1abc", false},
		{"a-b", false},
		{"a b", false},
		{"é", false},
	}

	for _, tt := range tests {
		if got := IsIdentifier(tt.input); got != tt.want {
			t.Errorf("IsIdentifier(%q): got %v, want %v", tt.input, got, tt.want)
		}
	}
}
