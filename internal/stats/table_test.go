package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Item", "Pass Rate", "Tries"}
	rows := [][]string{
		{"a", "97.5%", "12"},
		{"castle", "8.0%", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Item   Pass Rate Tries" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "a          97.5%    12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "castle      8.0%     3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Item", "N"}, [][]string{{"字", "1"}}, nil)
	if lines[1] != "字   1" {
		t.Fatalf("expected wide rune padded by display width, got %q", lines[1])
	}
}
