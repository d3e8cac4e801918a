package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateColumn  = "Date"
	CloseColumn = "Close"
)

// SeriesRow is one record. Close is NaN when the cell is blank. Date is only
// meaningful when DateParsed is set.
type SeriesRow struct {
	Date       time.Time
	DateLabel  string
	DateParsed bool
	Close      float64
	Fields     map[string]interface{}
}

// DateKey identifies the row's date for joins. Rows whose Date did not parse
// match on the trimmed label instead.
func (r SeriesRow) DateKey() string {
	if r.DateParsed {
		return r.Date.UTC().Format(time.RFC3339Nano)
	}

	return strings.TrimSpace(r.DateLabel)
}

// TimeSeries is a single symbol's rows in file order. Rows are assumed to be
// sorted by Date ascending; nothing is reordered or deduplicated.
type TimeSeries struct {
	Symbol   string
	Interval string
	Source   Source
	Columns  []string
	Rows     []SeriesRow

	closeErr error
}

func (ts *TimeSeries) Len() int {
	return len(ts.Rows)
}

func (ts *TimeSeries) HasColumn(name string) bool {
	for _, c := range ts.Columns {
		if c == name {
			return true
		}
	}

	return false
}

func (ts *TimeSeries) HasClose() bool {
	return ts.HasColumn(CloseColumn)
}

// CheckDates reports a series that has rows but no Date column.
func (ts *TimeSeries) CheckDates() error {
	if len(ts.Rows) > 0 && !ts.HasColumn(DateColumn) {
		return fmt.Errorf("%w: %s_%s has no %s column", ErrMalformedData, ts.Symbol, ts.Interval, DateColumn)
	}

	return nil
}

// Closes returns the Close column in row order. Blank cells are NaN; a cell
// that is not a number fails the whole column.
func (ts *TimeSeries) Closes() ([]float64, error) {
	if len(ts.Rows) > 0 && !ts.HasClose() {
		return nil, fmt.Errorf("%w: %s_%s has no %s column", ErrMalformedData, ts.Symbol, ts.Interval, CloseColumn)
	}

	if ts.closeErr != nil {
		return nil, fmt.Errorf("%s_%s: %w", ts.Symbol, ts.Interval, ts.closeErr)
	}

	closes := make([]float64, len(ts.Rows))
	for i, row := range ts.Rows {
		closes[i] = row.Close
	}

	return closes, nil
}

func (ts *TimeSeries) Last() (SeriesRow, error) {
	if len(ts.Rows) == 0 {
		return SeriesRow{}, fmt.Errorf("%w: %s_%s has no rows", ErrEmptySeries, ts.Symbol, ts.Interval)
	}

	return ts.Rows[len(ts.Rows)-1], nil
}
