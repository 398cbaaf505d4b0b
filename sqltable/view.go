// Package sqltable reads SQL query results as textable views.
package sqltable

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/domonda/go-textable"
)

// ScanRowsAsView reads all rows into a StringsView
// using the result column names as view columns.
//
// Values are formatted as strings: nil as empty string,
// []byte as string, time.Time as RFC 3339,
// and all other values with fmt.Sprint.
// The rows are closed before returning.
func ScanRowsAsView(ctx context.Context, rows Rows) (view *textable.StringsView, err error) {
	defer func() {
		err = errors.Join(err, rows.Close())
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	view = &textable.StringsView{Cols: columns}

	for rows.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rowStrings := make([]string, len(columns))
		valueScanners := make([]any, len(columns))
		for i := range valueScanners {
			valueScanners[i] = stringScanner{&rowStrings[i]}
		}
		err = rows.Scan(valueScanners...)
		if err != nil {
			return view, err
		}
		view.Rows = append(view.Rows, rowStrings)
	}
	return view, rows.Err()
}

var _ sql.Scanner = stringScanner{}

type stringScanner struct {
	dest *string
}

// Scan implements the database/sql.Scanner interface.
func (s stringScanner) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s.dest = ""
	case string:
		*s.dest = v
	case []byte:
		// string conversion copies the bytes
		// that are only valid during the call
		*s.dest = string(v)
	case time.Time:
		*s.dest = v.Format(time.RFC3339)
	case bool:
		*s.dest = strconv.FormatBool(v)
	case int64:
		*s.dest = strconv.FormatInt(v, 10)
	case float64:
		*s.dest = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		*s.dest = fmt.Sprint(v)
	}
	return nil
}
