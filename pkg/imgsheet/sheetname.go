package imgsheet

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// maxSheetNameLength is the Excel limit on worksheet titles.
const maxSheetNameLength = 31

var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// SheetName turns a tab name into a valid worksheet title.
// index is the 1-based tab position, used when the name is empty.
func SheetName(name string, index int) string {
	name = norm.NFC.String(name)
	name = sheetNameReplacer.Replace(name)
	name = truncateRunes(name, maxSheetNameLength)
	name = strings.TrimSpace(strings.Trim(name, "' "))
	if name == "" {
		return fmt.Sprintf("Sheet%d", index)
	}
	return name
}

// uniqueSheetName appends " (n)" until the name is not in used.
// Excel compares sheet names case-insensitively.
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(name, maxSheetNameLength-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
