package textable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ColumnRange is a spreadsheet range in A1 notation
// like "A:B", "Sheet1!A:F" or "'My Sheet'!B2:C".
// Column indices are zero based, row numbers
// are one based and zero if not specified.
type ColumnRange struct {
	Sheet    string
	First    int
	Last     int
	FirstRow int
	LastRow  int
}

// ParseColumnRange parses a range in A1 notation.
// A single reference like "C" is a range of one column.
// Column letters are case-insensitive.
func ParseColumnRange(s string) (r ColumnRange, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return r, errors.New("empty column range")
	}
	if i := strings.LastIndexByte(s, '!'); i >= 0 {
		r.Sheet, err = unquoteSheetName(s[:i])
		if err != nil {
			return ColumnRange{}, err
		}
		s = s[i+1:]
	}
	first, last, found := strings.Cut(s, ":")
	r.First, r.FirstRow, err = parseCellRef(first)
	if err != nil {
		return ColumnRange{}, fmt.Errorf("invalid column range %q: %w", s, err)
	}
	r.Last, r.LastRow = r.First, r.FirstRow
	if found {
		r.Last, r.LastRow, err = parseCellRef(last)
		if err != nil {
			return ColumnRange{}, fmt.Errorf("invalid column range %q: %w", s, err)
		}
	}
	if r.Last < r.First {
		return ColumnRange{}, fmt.Errorf("invalid column range %q: last column before first", s)
	}
	if r.FirstRow > 0 && r.LastRow > 0 && r.LastRow < r.FirstRow {
		return ColumnRange{}, fmt.Errorf("invalid column range %q: last row before first", s)
	}
	return r, nil
}

// MustParseColumnRange is like ParseColumnRange but panics on error.
func MustParseColumnRange(s string) ColumnRange {
	r, err := ParseColumnRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// NumCols returns the number of columns of the range.
func (r ColumnRange) NumCols() int {
	return r.Last - r.First + 1
}

// Columns returns the column letters from the first to the last column.
func (r ColumnRange) Columns() []string {
	cols := make([]string, 0, r.NumCols())
	for i := r.First; i <= r.Last; i++ {
		cols = append(cols, ColumnLetters(i))
	}
	return cols
}

// WithSheet returns a copy of the range for another sheet.
func (r ColumnRange) WithSheet(sheet string) ColumnRange {
	r.Sheet = sheet
	return r
}

// String returns the range in A1 notation.
// Sheet names that are not plain identifiers are quoted.
func (r ColumnRange) String() string {
	var b strings.Builder
	if r.Sheet != "" {
		b.WriteString(quoteSheetName(r.Sheet))
		b.WriteByte('!')
	}
	b.WriteString(ColumnLetters(r.First))
	if r.FirstRow > 0 {
		b.WriteString(strconv.Itoa(r.FirstRow))
	}
	b.WriteByte(':')
	b.WriteString(ColumnLetters(r.Last))
	if r.LastRow > 0 {
		b.WriteString(strconv.Itoa(r.LastRow))
	}
	return b.String()
}

// ColumnLetters returns the spreadsheet column letters
// for a zero based column index: 0 is "A", 25 is "Z", 26 is "AA".
// Negative indices return an empty string.
func ColumnLetters(index int) string {
	if index < 0 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}

// ColumnIndex returns the zero based column index
// for spreadsheet column letters like "A" or "ab".
func ColumnIndex(letters string) (int, error) {
	if letters == "" {
		return 0, errors.New("empty column letters")
	}
	if len(letters) > 7 {
		return 0, fmt.Errorf("column letters %q too long", letters)
	}
	n := 0
	for _, c := range letters {
		switch {
		case c >= 'A' && c <= 'Z':
			n = n*26 + int(c-'A') + 1
		case c >= 'a' && c <= 'z':
			n = n*26 + int(c-'a') + 1
		default:
			return 0, fmt.Errorf("invalid column letters %q", letters)
		}
	}
	return n - 1, nil
}

func parseCellRef(ref string) (col, row int, err error) {
	ref = strings.TrimSpace(ref)
	i := 0
	for i < len(ref) && (ref[i] >= 'A' && ref[i] <= 'Z' || ref[i] >= 'a' && ref[i] <= 'z') {
		i++
	}
	col, err = ColumnIndex(ref[:i])
	if err != nil {
		return 0, 0, err
	}
	if i < len(ref) {
		row, err = strconv.Atoi(ref[i:])
		if err != nil || row < 1 {
			return 0, 0, fmt.Errorf("invalid row number in %q", ref)
		}
	}
	return col, row, nil
}

func quoteSheetName(name string) string {
	for _, c := range name {
		if !(c == '_' || c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}

func unquoteSheetName(name string) (string, error) {
	if len(name) >= 2 && name[0] == '\'' && name[len(name)-1] == '\'' {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'"), nil
	}
	if strings.ContainsRune(name, '\'') {
		return "", fmt.Errorf("invalid quoted sheet name %q", name)
	}
	if name == "" {
		return "", errors.New("empty sheet name")
	}
	return name, nil
}
