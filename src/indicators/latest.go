package indicators

import (
	"github.com/jiaming2012/market-stats/src/models"
)

// LatestRow returns a copy of the last row's fields.
func LatestRow(ts *models.TimeSeries) (map[string]interface{}, error) {
	row, err := ts.Last()
	if err != nil {
		return nil, err
	}

	latest := make(map[string]interface{}, len(row.Fields))
	for k, v := range row.Fields {
		latest[k] = v
	}

	return latest, nil
}
