package indicators

import (
	"math"

	"github.com/jiaming2012/market-stats/src/models"
)

type DecouplingResult struct {
	Rate float64
	Days int
}

// DecoupledRate is the share of shared dates on which the two series'
// returns have opposite signs. Returns are computed on each series before the
// join; dates where either return is undefined are skipped and a zero return
// never counts as decoupled.
func DecoupledRate(a, b *models.TimeSeries) (DecouplingResult, error) {
	if err := checkDates(a, b); err != nil {
		return DecouplingResult{}, err
	}

	closesA, err := a.Closes()
	if err != nil {
		return DecouplingResult{}, err
	}

	closesB, err := b.Closes()
	if err != nil {
		return DecouplingResult{}, err
	}

	returnsA := PercentChanges(closesA)
	returnsB := PercentChanges(closesB)

	days, decoupled := 0, 0
	for _, row := range JoinOnDate(a, b) {
		ra, rb := returnsA[row.Left], returnsB[row.Right]
		if math.IsNaN(ra) || math.IsNaN(rb) {
			continue
		}

		days++
		if ra*rb < 0 {
			decoupled++
		}
	}

	if days == 0 {
		return DecouplingResult{Rate: math.NaN()}, nil
	}

	return DecouplingResult{
		Rate: float64(decoupled) / float64(days),
		Days: days,
	}, nil
}
