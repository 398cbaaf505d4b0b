package csvtable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domonda/go-textable"
)

func TestExportCSV(t *testing.T) {
	tests := []struct {
		name  string
		table textable.Table
		want  string
	}{
		{name: "empty", table: nil, want: ""},
		{name: "plain", table: textable.Table{{"Apple", "10"}, {"Pear", "20"}}, want: "Apple,10\nPear,20"},
		{name: "empty cells", table: textable.Table{{"Solo", ""}, {"", ""}}, want: "Solo,\n,"},
		{name: "comma", table: textable.Table{{"a,b", "c"}}, want: `"a,b",c`},
		{name: "quotes", table: textable.Table{{`say "hi"`, "x"}}, want: `"say ""hi""",x`},
		{name: "newline", table: textable.Table{{"a\nb", "c"}}, want: "\"a\nb\",c"},
		{name: "semicolon unquoted", table: textable.Table{{"a;b", "c"}}, want: "a;b,c"},
		{
			name:  "parsed tab separated",
			table: textable.ParseTextToColumns("Price\t1,50 EUR\nName\tSolo"),
			want:  "Price,\"1,50 EUR\"\nName,Solo",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExportCSV(tt.table))
		})
	}
}
