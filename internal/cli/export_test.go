package cli

import "testing"

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", "dot"},
		{"graph.dot", "dot"},
		{"graph.svg", "svg"},
		{"graph.SVG", "svg"},
		{"graph.png", "dot"},
		{"svg", "dot"}, // no extension
	}

	for _, tt := range tests {
		if got := formatFromPath(tt.path); got != tt.want {
			t.Errorf("formatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
