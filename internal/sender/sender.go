// Package sender runs the complete flow of sending selected text
// to a spreadsheet: parse, append, record history and fall back
// to the clipboard when the spreadsheet can't be written.
package sender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/domonda/go-textable"
	"github.com/domonda/go-textable/csvtable"
	"github.com/domonda/go-textable/history"
	"github.com/domonda/go-textable/sheets"
)

// ErrNoData is returned when the text contains no parseable rows.
var ErrNoData = errors.New("no data to send")

// FallbackClipboard is the Result.Fallback value
// when the CSV export was copied to the clipboard.
const FallbackClipboard = "clipboard"

// Appender appends a table to a spreadsheet,
// implemented by *sheets.Client.
type Appender interface {
	Append(ctx context.Context, cfg *sheets.Config, table textable.Table) (*sheets.AppendResult, error)
}

// Recorder records send attempts,
// implemented by *history.Store.
type Recorder interface {
	Add(ctx context.Context, entry history.Entry) (history.Entry, error)
}

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

var (
	_ Appender = (*sheets.Client)(nil)
	_ Recorder = (*history.Store)(nil)
)

// Sender sends text to a spreadsheet.
// History, Clipboard, Logger and Now are optional.
type Sender struct {
	Client    Appender
	History   Recorder
	Clipboard Clipboard
	Logger    *slog.Logger

	// Now returns the timestamp of history entries,
	// the store sets the current time if nil
	Now func() time.Time
}

// Result of Sender.Send.
type Result struct {
	Table    textable.Table       `json:"parsedData"`
	Append   *sheets.AppendResult `json:"append,omitempty"`
	Entry    *history.Entry       `json:"historyEntry,omitempty"`
	Fallback string               `json:"fallback,omitempty"`
	CSV      string               `json:"csv,omitempty"`
}

// Send parses text and appends the rows to the spreadsheet of cfg.
//
// Every attempt with parsed rows is recorded in the history
// whether it succeeded or failed.
// If the append fails because of missing or rejected credentials
// and a Clipboard is set, then the rows are copied as CSV
// and the returned Result has Fallback set to FallbackClipboard.
// The append error is still returned in that case.
func (s *Sender) Send(ctx context.Context, cfg *sheets.Config, text string) (*Result, error) {
	log := s.Logger
	if log == nil {
		log = slog.Default()
	}

	table := textable.ParseTextToColumns(text)
	if table.IsEmpty() {
		return nil, ErrNoData
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sheets config: %w", err)
	}
	result := &Result{Table: table}

	appendResult, sendErr := s.Client.Append(ctx, cfg, table)
	result.Append = appendResult

	entry := history.Entry{
		OriginalText: text,
		ParsedData:   table,
		Success:      sendErr == nil,
		SheetName:    cfg.TargetSheet(),
	}
	if s.Now != nil {
		entry.Timestamp = s.Now()
	}
	if sendErr != nil {
		entry.Error = sendErr.Error()
	}
	if s.History != nil {
		// Recording must not depend on the canceled send context
		recorded, err := s.History.Add(context.WithoutCancel(ctx), entry)
		if err != nil {
			log.WarnContext(ctx, "failed to record history", "error", err)
		} else {
			result.Entry = &recorded
		}
	}

	if sendErr == nil {
		log.InfoContext(ctx, "sent rows", "rows", table.NumRows(), "range", cfg.TargetRange())
		return result, nil
	}

	log.ErrorContext(ctx, "failed to send rows", "error", sendErr, "kind", sheets.KindOf(sendErr).String())
	if sheets.IsAuthError(sendErr) && s.Clipboard != nil {
		result.CSV = csvtable.ExportCSV(table)
		if err := s.Clipboard.Copy(ctx, result.CSV); err != nil {
			log.WarnContext(ctx, "failed to copy CSV to clipboard", "error", err)
		} else {
			result.Fallback = FallbackClipboard
		}
	}
	return result, sendErr
}
