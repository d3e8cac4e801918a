package indicators

import (
	"time"

	"github.com/jiaming2012/market-stats/src/models"
)

// JoinedRow points at the rows of two series that share a Date.
type JoinedRow struct {
	Date  time.Time
	Left  int
	Right int
}

// JoinOnDate is an inner join: dates missing from either series are dropped
// without notice. Output follows the left series' order; a date repeated on
// either side yields every matching pair.
func JoinOnDate(left, right *models.TimeSeries) []JoinedRow {
	rightIndex := make(map[string][]int, right.Len())
	for i, row := range right.Rows {
		key := row.DateKey()
		rightIndex[key] = append(rightIndex[key], i)
	}

	var joined []JoinedRow
	for i, row := range left.Rows {
		for _, j := range rightIndex[row.DateKey()] {
			joined = append(joined, JoinedRow{
				Date:  row.Date,
				Left:  i,
				Right: j,
			})
		}
	}

	return joined
}

// checkDates fails when either series lacks the Date column needed to join.
func checkDates(a, b *models.TimeSeries) error {
	if err := a.CheckDates(); err != nil {
		return err
	}

	return b.CheckDates()
}
