package output

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domonda/go-textable"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatTable},
		{input: "table", want: FormatTable},
		{input: " JSON ", want: FormatJSON},
		{input: "csv", want: FormatCSV},
		{input: "yaml", want: FormatYAML},
		{input: "html", want: FormatHTML},
		{input: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrinter_Print(t *testing.T) {
	table := textable.Table{{"Apple", "10"}, {"商品", "5"}}
	tests := []struct {
		name   string
		format Format
		data   any
		want   string
	}{
		{
			name:   "table",
			format: FormatTable,
			data:   table,
			want:   "A      B\nApple  10\n商品   5\n",
		},
		{
			name:   "csv without letter header",
			format: FormatCSV,
			data:   table,
			want:   "Apple,10\n商品,5\n",
		},
		{
			name:   "csv with titled columns",
			format: FormatCSV,
			data:   table.View("", "Name", "Qty"),
			want:   "Name,Qty\nApple,10\n商品,5\n",
		},
		{
			name:   "json",
			format: FormatJSON,
			data:   textable.Table{{"a", "<b>"}},
			want:   "[\n  [\n    \"a\",\n    \"<b>\"\n  ]\n]\n",
		},
		{
			name:   "yaml",
			format: FormatYAML,
			data:   map[string]int{"rows": 2},
			want:   "rows: 2\n",
		},
		{
			name:   "table falls back to yaml",
			format: FormatTable,
			data:   map[string]string{"pattern": "tab"},
			want:   "pattern: tab\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := NewPrinter(&buf, tt.format).Print(context.Background(), tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrinter_PrintHTML(t *testing.T) {
	var buf bytes.Buffer
	err := NewPrinter(&buf, FormatHTML).Print(context.Background(), textable.Table{{"<x>", "1"}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<th>A</th>")
	assert.Contains(t, buf.String(), "<td>&lt;x&gt;</td>")
}

func TestPrinter_WithQuery(t *testing.T) {
	data := textable.Table{{"Apple", "10"}, {"Pear", "20"}}

	var buf bytes.Buffer
	err := NewPrinter(&buf, FormatJSON).WithQuery(".[] | .[0]").Print(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "\"Apple\"\n\"Pear\"\n", buf.String())

	buf.Reset()
	err = NewPrinter(&buf, FormatYAML).WithQuery("length").Print(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "2\n", buf.String())

	err = NewPrinter(&buf, FormatJSON).WithQuery(".[").Print(context.Background(), data)
	assert.ErrorContains(t, err, "invalid --query")
}

func TestRunQuery(t *testing.T) {
	results, err := RunQuery(`map(select(.[1] | tonumber > 15)) | length`, textable.Table{{"a", "10"}, {"b", "20"}})
	require.NoError(t, err)
	assert.Equal(t, []any{1}, results)

	_, err = RunQuery(`.[0] | tonumber`, []string{"x"})
	assert.ErrorContains(t, err, "query error")
}

func TestPrinter_Structured(t *testing.T) {
	assert.False(t, NewPrinter(nil, FormatTable).Structured())
	assert.False(t, NewPrinter(nil, FormatCSV).Structured())
	assert.True(t, NewPrinter(nil, FormatJSON).Structured())
	assert.True(t, NewPrinter(nil, FormatYAML).Structured())
	assert.True(t, NewPrinter(nil, FormatHTML).WithQuery(".").Structured())
}
