package htmltable

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domonda/go-textable"
)

func ExampleWriter() {
	table := textable.ParseTextToColumns("Apple,10\nPear <b>,20\nSolo")

	NewWriter().
		WithHeaderRow(true).
		WithColumnFormatter(1, HTMLCodeCellFormatter).
		WriteView(context.Background(), os.Stdout, table.View("Selection", "Item", "Qty"))

	// Output:
	// <table>
	//   <caption>Selection</caption>
	//   <tr><th>Item</th><th>Qty</th></tr>
	//   <tr><td>Apple</td><td><code>10</code></td></tr>
	//   <tr><td>Pear &lt;b&gt;</td><td><code>20</code></td></tr>
	//   <tr><td>Solo</td><td><code></code></td></tr>
	// </table>
}

func TestWriter_WriteView(t *testing.T) {
	ctx := context.Background()
	table := textable.ParseTextToColumns("a,1\nb,2\nc,3")
	tests := []struct {
		name   string
		writer *Writer
		view   textable.View
		want   string
	}{
		{
			name:   "empty",
			writer: NewWriter(),
			view:   textable.Table(nil).View(""),
			want:   "<table>\n</table>",
		},
		{
			name:   "class and caption",
			writer: NewWriter().WithTableClass("preview").WithCaption("Fruits & more"),
			view:   textable.Table{{"x", "y"}}.View("ignored"),
			want: "<table class='preview'>\n" +
				"  <caption>Fruits &amp; more</caption>\n" +
				"  <tr><td>x</td><td>y</td></tr>\n" +
				"</table>",
		},
		{
			name:   "row limit",
			writer: NewWriter().WithRowLimit(2),
			view:   table.View(""),
			want: "<table>\n" +
				"  <tr><td>a</td><td>1</td></tr>\n" +
				"  <tr><td>b</td><td>2</td></tr>\n" +
				"  <tfoot><tr><td colspan='2'>1 more rows</td></tr></tfoot>\n" +
				"</table>",
		},
		{
			name:   "span class",
			writer: NewWriter().WithColumnFormatter(0, HTMLSpanClassCellFormatter("key")).WithColumnFormatter(1, nil),
			view:   textable.Table{{"k", "v"}}.View(""),
			want: "<table>\n" +
				"  <tr><td><span class='key'>k</span></td><td>v</td></tr>\n" +
				"</table>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := tt.writer.WriteView(ctx, &buf, tt.view)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriter_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := NewWriter().WriteTable(ctx, &buf, textable.Table{{"a", "b"}})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}

func TestWriter_Immutable(t *testing.T) {
	w := NewWriter()
	limited := w.WithRowLimit(5).WithRowLimit(-1)
	assert.Equal(t, 0, w.RowLimit())
	assert.Equal(t, 0, limited.RowLimit())
	assert.Equal(t, "x", w.WithTableClass("x").TableClass())
	assert.Equal(t, "", w.TableClass())
}
