package render

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bold", "**Grand Ballroom**", "<strong>Grand Ballroom</strong>"},
		{"list", "• a\n\n- b\n- c", "<li>b</li>"},
		{"code", "use `go test`", "<code>go test</code>"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Markdown(test.input)
			if !strings.Contains(got, test.expected) {
				t.Errorf("Markdown(%q) = %q, want it to contain %q", test.input, got, test.expected)
			}
		})
	}
}

func TestMarkdownEmpty(t *testing.T) {
	if got := Markdown("   \n"); got != "" {
		t.Errorf("Markdown(blank) = %q, want empty", got)
	}
}
