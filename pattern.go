package textable

import (
	"fmt"
	"strings"
)

// Pattern is a label classifying the dominant structure of a text.
type Pattern int

const (
	PatternMixedContent Pattern = iota
	PatternTabSeparated
	PatternCommaSeparated
	PatternSemicolonSeparated
	PatternPipeSeparated
	PatternSpaceSeparated
	PatternNumberFirst
)

var patternLabels = [...]string{
	PatternMixedContent:       "mixed-content",
	PatternTabSeparated:       "tab-separated",
	PatternCommaSeparated:     "comma-separated",
	PatternSemicolonSeparated: "semicolon-separated",
	PatternPipeSeparated:      "pipe-separated",
	PatternSpaceSeparated:     "space-separated",
	PatternNumberFirst:        "number-first",
}

// Patterns returns all valid Pattern values.
func Patterns() []Pattern {
	return []Pattern{
		PatternTabSeparated,
		PatternCommaSeparated,
		PatternSemicolonSeparated,
		PatternPipeSeparated,
		PatternSpaceSeparated,
		PatternNumberFirst,
		PatternMixedContent,
	}
}

// DetectTextPattern classifies the whole text,
// not its individual lines, using the same delimiter
// priority as ParseTextToColumns.
// If no delimiter is found then PatternNumberFirst is returned
// for a text beginning with a digit, else PatternMixedContent.
//
// The result is only a label for display,
// it has no influence on ParseTextToColumns
// and may differ from the delimiters chosen per line
// when the text mixes delimiters across lines.
func DetectTextPattern(text string) Pattern {
	switch {
	case strings.Contains(text, "\t"):
		return PatternTabSeparated
	case strings.Contains(text, ","):
		return PatternCommaSeparated
	case strings.Contains(text, ";"):
		return PatternSemicolonSeparated
	case strings.Contains(text, "|"):
		return PatternPipeSeparated
	case strings.Contains(text, "  "):
		return PatternSpaceSeparated
	case text != "" && text[0] >= '0' && text[0] <= '9':
		return PatternNumberFirst
	}
	return PatternMixedContent
}

// Valid indicates if p is one of the defined patterns.
func (p Pattern) Valid() bool {
	return p >= 0 && int(p) < len(patternLabels)
}

// String returns the label of the pattern like "tab-separated".
func (p Pattern) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
	return patternLabels[p]
}

// MarshalText implements encoding.TextMarshaler.
func (p Pattern) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid textable.Pattern %d", int(p))
	}
	return []byte(patternLabels[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pattern) UnmarshalText(text []byte) error {
	parsed, err := ParsePattern(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePattern returns the Pattern for a label like "comma-separated".
func ParsePattern(label string) (Pattern, error) {
	for p, l := range patternLabels {
		if l == label {
			return Pattern(p), nil
		}
	}
	return PatternMixedContent, fmt.Errorf("unknown text pattern %q", label)
}
