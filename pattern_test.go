package textable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTextPattern(t *testing.T) {
	tests := []struct {
		text string
		want Pattern
	}{
		{text: "", want: PatternMixedContent},
		{text: "hello world", want: PatternMixedContent},
		{text: "Name\tPrice\nApple\t10", want: PatternTabSeparated},
		{text: "a,b\tc", want: PatternTabSeparated},
		{text: "Apple,10", want: PatternCommaSeparated},
		{text: "a;b,c", want: PatternCommaSeparated},
		{text: "Apple;10", want: PatternSemicolonSeparated},
		{text: "| Apple | 10 |", want: PatternPipeSeparated},
		{text: "Apple    10", want: PatternSpaceSeparated},
		{text: "123abc", want: PatternNumberFirst},
		{text: "42 Widgets", want: PatternNumberFirst},
		{text: " 42 Widgets", want: PatternMixedContent},
		{text: "Widgets 42", want: PatternMixedContent},
		// Whole text classification, the second line is comma separated
		{text: "Apple 10\nPear,20", want: PatternCommaSeparated},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectTextPattern(tt.text))
		})
	}
}

func TestPatternText(t *testing.T) {
	for _, p := range Patterns() {
		require.True(t, p.Valid(), "Valid")
		text, err := p.MarshalText()
		require.NoError(t, err)

		var parsed Pattern
		require.NoError(t, parsed.UnmarshalText(text))
		require.Equal(t, p, parsed)
	}

	require.Equal(t, "number-first", PatternNumberFirst.String())
	require.Equal(t, "Pattern(99)", Pattern(99).String())

	_, err := ParsePattern("csv")
	require.Error(t, err)
	_, err = Pattern(-1).MarshalText()
	require.Error(t, err)
}
