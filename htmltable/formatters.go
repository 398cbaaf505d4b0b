package htmltable

import (
	"fmt"
	"html/template"
)

// CellFormatter renders the string value of a cell as HTML.
// Implementations must escape the value themselves.
type CellFormatter interface {
	FormatCell(value string) template.HTML
}

// CellFormatterFunc implements CellFormatter for a function.
type CellFormatterFunc func(value string) template.HTML

func (f CellFormatterFunc) FormatCell(value string) template.HTML {
	return f(value)
}

var (
	_ CellFormatter = CellFormatterFunc(nil)
	_ CellFormatter = HTMLSpanClassCellFormatter("")

	// EscapeCellFormatter is the default formatter escaping the value.
	EscapeCellFormatter CellFormatterFunc = func(value string) template.HTML {
		return template.HTML(template.HTMLEscapeString(value)) //#nosec G203
	}

	HTMLPreCellFormatter CellFormatterFunc = func(value string) template.HTML {
		return template.HTML("<pre>" + template.HTMLEscapeString(value) + "</pre>") //#nosec G203
	}

	HTMLCodeCellFormatter CellFormatterFunc = func(value string) template.HTML {
		return template.HTML("<code>" + template.HTMLEscapeString(value) + "</code>") //#nosec G203
	}
)

// HTMLSpanClassCellFormatter formats the cell value within an HTML span element
// with the class of the underlying string value.
type HTMLSpanClassCellFormatter string

func (class HTMLSpanClassCellFormatter) FormatCell(value string) template.HTML {
	text := template.HTMLEscapeString(value)
	return template.HTML(fmt.Sprintf("<span class='%s'>%s</span>", template.HTMLEscapeString(string(class)), text)) //#nosec G203
}
