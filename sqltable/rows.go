package sqltable

import "database/sql"

var _ Rows = &sql.Rows{}

// Rows is the subset of *sql.Rows methods
// used to read a query result as a view.
type Rows interface {
	Columns() ([]string, error)
	Scan(dest ...any) error
	Next() bool
	Close() error
	Err() error
}
