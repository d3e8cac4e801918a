package indicators

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/market-stats/src/models"
)

func newSeries(t *testing.T, symbol string, dates []string, closes []float64) *models.TimeSeries {
	t.Helper()
	require.Equal(t, len(dates), len(closes))

	rows := make(models.Rows, len(dates))
	for i := range dates {
		rows[i] = models.Row{
			"Date":  dates[i],
			"Close": strconv.FormatFloat(closes[i], 'f', -1, 64),
		}
	}

	ts, err := rows.ConvertToSeries(symbol, "daily", models.SourceMarket)
	require.NoError(t, err)

	return ts
}

var fourDays = []string{"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}
