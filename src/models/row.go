package models

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

const byteOrderMark = "\ufeff"

var seriesDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
}

// Row is one CSV record keyed by header name.
type Row map[string]string
type Rows []Row

// Table is a parsed CSV file with its header in file order.
type Table struct {
	Header []string
	Rows   Rows
}

// NewTable builds a Table from raw records, the first of which is the header.
// A UTF-8 byte order mark in front of the first header name is dropped.
func NewTable(records [][]string) Table {
	if len(records) == 0 {
		return Table{}
	}

	header := make([]string, len(records[0]))
	copy(header, records[0])
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], byteOrderMark)
	}

	rows := make(Rows, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}

		rows = append(rows, row)
	}

	return Table{
		Header: header,
		Rows:   rows,
	}
}

func ParseSeriesDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range seriesDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", ErrMalformedData, value)
}

// parseField keeps numeric cells as float64 and empty cells as nil so that
// the JSON output mirrors the file contents.
func parseField(value string) interface{} {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}

		return f
	}

	return value
}

// parseClose returns NaN for a blank or NaN cell. Any other cell that is not
// a finite number is an error.
func parseClose(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return math.NaN(), nil
	}

	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN(), fmt.Errorf("invalid %s %q", CloseColumn, trimmed)
	}

	return f, nil
}

// Columns returns the keys of the first row, sorted.
func (r Rows) Columns() []string {
	if len(r) == 0 {
		return nil
	}

	columns := make([]string, 0, len(r[0]))
	for name := range r[0] {
		columns = append(columns, name)
	}

	sort.Strings(columns)

	return columns
}

func (r Rows) ConvertToSeries(symbol, interval string, source Source) (*TimeSeries, error) {
	return Table{Header: r.Columns(), Rows: r}.ConvertToSeries(symbol, interval, source)
}

// ConvertToSeries never rejects a file over its Date or Close cells; those
// problems surface only from the operations that read them.
func (t Table) ConvertToSeries(symbol, interval string, source Source) (*TimeSeries, error) {
	series := &TimeSeries{
		Symbol:   symbol,
		Interval: interval,
		Source:   source,
		Columns:  t.Header,
		Rows:     make([]SeriesRow, 0, len(t.Rows)),
	}

	hasDate := series.HasColumn(DateColumn)
	hasClose := series.HasClose()

	for i, row := range t.Rows {
		fields := make(map[string]interface{}, len(row))
		for name, value := range row {
			fields[name] = parseField(value)
		}

		seriesRow := SeriesRow{
			Close:  math.NaN(),
			Fields: fields,
		}

		if hasDate {
			seriesRow.DateLabel = row[DateColumn]
			fields[DateColumn] = seriesRow.DateLabel

			if date, err := ParseSeriesDate(seriesRow.DateLabel); err == nil {
				seriesRow.Date = date
				seriesRow.DateParsed = true
			}
		}

		if hasClose {
			closePrice, err := parseClose(row[CloseColumn])
			if err != nil && series.closeErr == nil {
				series.closeErr = fmt.Errorf("%w: row %d: %v", ErrMalformedData, i+1, err)
			}

			seriesRow.Close = closePrice
		}

		series.Rows = append(series.Rows, seriesRow)
	}

	return series, nil
}
