package indicators

import (
	"github.com/jiaming2012/market-stats/src/models"
)

// LeadLag joins both series on Date, shifts a's closes forward by lag rows
// and correlates them with b's closes. Day t of b is compared with day t-lag
// of a; rows shifted off either end are excluded. Days is the number of pairs
// that remain.
func LeadLag(a, b *models.TimeSeries, lag int) (CorrelationResult, error) {
	if err := checkDates(a, b); err != nil {
		return CorrelationResult{}, err
	}

	closesA, err := a.Closes()
	if err != nil {
		return CorrelationResult{}, err
	}

	closesB, err := b.Closes()
	if err != nil {
		return CorrelationResult{}, err
	}

	joined := JoinOnDate(a, b)

	var x, y []float64
	for i, row := range joined {
		j := i - lag
		if j < 0 || j >= len(joined) {
			continue
		}

		x = append(x, closesA[joined[j].Left])
		y = append(y, closesB[row.Right])
	}

	return CorrelationResult{
		Correlation: pearson(x, y),
		Days:        len(x),
	}, nil
}
