// Package csvtable writes textable views as CSV
// and implements the CSV export used as clipboard
// payload and download format.
package csvtable

import (
	"errors"
	"fmt"
	"strings"
)

// Format describes the encoding and structural format of written CSV.
//
// Example:
//
//	format := &Format{
//	    Encoding:  "UTF-8",
//	    Separator: ",",
//	    Newline:   "\n",
//	}
type Format struct {
	// Encoding of the CSV data, like "UTF-8" or "Windows 1252".
	Encoding string `json:"encoding" yaml:"encoding"`

	// Separator is the single character field delimiter.
	Separator string `json:"separator" yaml:"separator"`

	// Newline is one of "\n", "\r\n" or "\n\r".
	Newline string `json:"newline" yaml:"newline"`
}

// NewFormat returns a UTF-8 Format with the passed separator
// and \n line endings as used by ExportCSV.
func NewFormat(separator string) *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: separator,
		Newline:   "\n",
	}
}

// Validate checks if the Format configuration is valid.
// It can be safely called on a nil receiver.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return errors.New("<nil> csvtable.Format")
	case f.Encoding == "":
		return errors.New("missing csvtable.Format.Encoding")
	case f.Separator == "":
		return errors.New("missing csvtable.Format.Separator")
	case len(f.Separator) > 1:
		return fmt.Errorf("invalid csvtable.Format.Separator: %q", f.Separator)
	case f.Newline == "":
		return errors.New("missing csvtable.Format.Newline")
	case f.Newline != "\n" && f.Newline != "\n\r" && f.Newline != "\r\n":
		return fmt.Errorf("invalid csvtable.Format.Newline: %q", f.Newline)
	}
	return nil
}

// EscapeQuotes escapes double quotes in a CSV field value according to RFC 4180.
// Each double quote character (") is replaced with two double quotes ("").
//
// Example:
//
//	escaped := EscapeQuotes(`Say "Hello"`)
//	// Returns: `Say ""Hello""`
func EscapeQuotes(val string) string {
	return strings.ReplaceAll(val, `"`, `""`)
}
