package imgsheet

import (
	"strings"
	"testing"
	"time"
)

func TestSheetName(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		expected string
	}{
		{"Login", 1, "Login"},
		{"a/b:c", 1, "a_b_c"},
		{"[draft]?", 2, "_draft__"},
		{"'quoted'", 1, "quoted"},
		{"   ", 4, "Sheet4"},
		{"", 2, "Sheet2"},
		{strings.Repeat("x", 40), 1, strings.Repeat("x", 31)},
		{strings.Repeat("画", 35), 1, strings.Repeat("画", 31)},
		// Decomposed e + combining acute is composed to a single rune.
		{"Cafe\u0301", 1, "Caf\u00e9"},
	}

	for _, tt := range tests {
		result := SheetName(tt.name, tt.index)
		if result != tt.expected {
			t.Errorf("SheetName(%q, %d) = %q, expected %q", tt.name, tt.index, result, tt.expected)
		}
	}
}

func TestUniqueSheetName(t *testing.T) {
	used := make(map[string]bool)
	long := strings.Repeat("y", 31)

	got := []string{
		uniqueSheetName("Tab", used),
		uniqueSheetName("tab", used),
		uniqueSheetName("TAB", used),
		uniqueSheetName(long, used),
		uniqueSheetName(long, used),
	}
	expected := []string{"Tab", "tab (2)", "TAB (3)", long, strings.Repeat("y", 27) + " (2)"}

	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("name %d = %q, expected %q", i, got[i], expected[i])
		}
	}
}

func TestFileName(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 600, time.FixedZone("JST", 9*3600))
	if got := FileName("evidence", ts); got != "evidence_2026-01-01T18-04-05.xlsx" {
		t.Errorf("FileName = %q", got)
	}
}
