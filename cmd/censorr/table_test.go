package main

import (
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"ID", "Name"}, [][]string{{"1", "alpha"}, {"2"}}, 0)
	if !strings.Contains(out, "ID") || !strings.Contains(out, "alpha") {
		t.Fatalf("missing header or cell content:\n%s", out)
	}
	// Border, header, rule, two data rows, border.
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 rendered lines, got %d:\n%s", len(lines), out)
	}
	width := len([]rune(lines[0]))
	for _, line := range lines {
		if len([]rune(line)) != width {
			t.Fatalf("short row not padded to full width:\n%s", out)
		}
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := renderTable(nil, [][]string{{"x"}}); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}
