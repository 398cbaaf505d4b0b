// Package history keeps a local SQLite log
// of all attempts to send parsed text to a spreadsheet.
package history

import (
	"time"

	"github.com/domonda/go-textable"
)

// Entry is one send attempt.
type Entry struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	OriginalText string         `json:"originalText"`
	ParsedData   textable.Table `json:"parsedData"`
	Success      bool           `json:"success"`
	Error        string         `json:"error,omitempty"`
	SheetName    string         `json:"sheetName,omitempty"`
}

// Status returns "success" or "failed".
func (e *Entry) Status() string {
	if e.Success {
		return "success"
	}
	return "failed"
}
