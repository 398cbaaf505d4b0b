package textable

import (
	"regexp"
	"strings"
)

// lineDelimiters in priority order,
// a run of spaces is checked after all of them.
var lineDelimiters = []string{"\t", ",", ";", "|"}

// space is the whitespace class of web page selections
// including no-break, typographic and ideographic spaces.
const space = `[\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]`

var (
	spaceRun       = regexp.MustCompile(space + `{2,}`)
	leadingNumber  = regexp.MustCompile(`^(\d+(?:\.\d+)?)` + space + `*(.*)$`)
	trailingNumber = regexp.MustCompile(`^(.*?)` + space + `+(\d+(?:\.\d+)?)$`)
)

// isSpace reports whether r is one of the runes matched by space.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// ParseTextToColumns splits free-form text into a Table
// with exactly two columns per row.
//
// Every non-blank line of text becomes one Row in input order.
// The delimiter of a line is chosen independently of all other lines
// by checking for the first present delimiter in this priority order:
//
//  1. tab
//  2. comma
//  3. semicolon
//  4. vertical bar '|'
//  5. a run of two or more spaces
//
// If a line contains none of them, then a leading number followed by text
// ("42 Widgets"), or text followed by a trailing number ("Widgets 42"),
// is split at the number boundary.
// Otherwise the line is split at its first space,
// or kept as a single field if it has no space.
//
// All fields are trimmed and empty fields are dropped.
// Rows with fewer than two fields are padded with empty strings,
// fields beyond the second are discarded.
//
// ParseTextToColumns never fails and has no side effects,
// the same text always results in the same Table.
//
// Example:
//
//	table := ParseTextToColumns("Apple,10\nPear;20;30\n\n42 Widgets\nSolo")
//	// table == Table{
//	//     {"Apple", "10"},
//	//     {"Pear", "20"},
//	//     {"42", "Widgets"},
//	//     {"Solo", ""},
//	// }
func ParseTextToColumns(text string) Table {
	var table Table
	for _, line := range strings.Split(text, "\n") {
		line = trimSpace(line)
		if line == "" {
			continue
		}
		table = append(table, parseLine(line))
	}
	return table
}

// parseLine splits a trimmed, non-empty line into a Row.
func parseLine(line string) Row {
	var row Row
	col := 0
	for _, field := range splitLine(line) {
		field = trimSpace(field)
		if field == "" {
			continue
		}
		row[col] = field
		col++
		if col == len(row) {
			break
		}
	}
	return row
}

// splitLine returns the untrimmed fields of a line
// using the first matching delimiter strategy.
func splitLine(line string) []string {
	for _, delim := range lineDelimiters {
		if strings.Contains(line, delim) {
			return strings.Split(line, delim)
		}
	}
	if strings.Contains(line, "  ") {
		return spaceRun.Split(line, -1)
	}
	if m := leadingNumber.FindStringSubmatch(line); m != nil {
		return []string{m[1], m[2]}
	}
	if m := trailingNumber.FindStringSubmatch(line); m != nil {
		return []string{m[1], m[2]}
	}
	if i := strings.IndexByte(line, ' '); i > 0 {
		return []string{line[:i], line[i+1:]}
	}
	return []string{line}
}
