package indicators

import (
	"math"

	"github.com/jiaming2012/market-stats/src/models"
)

const DefaultSurgeThreshold = 0.1

const (
	ReturnField = "Return"
	SurgeField  = "Surge"
)

type SurgeRecord struct {
	Row    models.SeriesRow
	Return float64
	Surge  bool
}

// ToMap returns the row's fields annotated with Return and Surge.
func (r SurgeRecord) ToMap() map[string]interface{} {
	m := make(map[string]interface{}, len(r.Row.Fields)+2)
	for k, v := range r.Row.Fields {
		m[k] = v
	}

	m[ReturnField] = OrNil(r.Return)
	m[SurgeField] = r.Surge

	return m
}

// surgeFlags marks rows whose percent change is strictly above threshold.
// Undefined changes are never a surge.
func surgeFlags(closes []float64, threshold float64) ([]float64, []bool) {
	changes := PercentChanges(closes)
	flags := make([]bool, len(changes))
	for i, change := range changes {
		flags[i] = !math.IsNaN(change) && change > threshold
	}

	return changes, flags
}

// SurgeFlags returns, in row order, every row flagged as a surge.
func SurgeFlags(ts *models.TimeSeries, threshold float64) ([]SurgeRecord, error) {
	closes, err := ts.Closes()
	if err != nil {
		return nil, err
	}

	changes, flags := surgeFlags(closes, threshold)

	surges := []SurgeRecord{}
	for i, isSurge := range flags {
		if !isSurge {
			continue
		}

		surges = append(surges, SurgeRecord{
			Row:    ts.Rows[i],
			Return: changes[i],
			Surge:  true,
		})
	}

	return surges, nil
}

type SimilarityResult struct {
	Similarity float64
	Days       int
}

// SurgeSimilarity flags surges in each series independently using
// DefaultSurgeThreshold, then reports the share of shared dates on which
// both flags agree.
func SurgeSimilarity(a, b *models.TimeSeries) (SimilarityResult, error) {
	if err := checkDates(a, b); err != nil {
		return SimilarityResult{}, err
	}

	closesA, err := a.Closes()
	if err != nil {
		return SimilarityResult{}, err
	}

	closesB, err := b.Closes()
	if err != nil {
		return SimilarityResult{}, err
	}

	_, flagsA := surgeFlags(closesA, DefaultSurgeThreshold)
	_, flagsB := surgeFlags(closesB, DefaultSurgeThreshold)

	joined := JoinOnDate(a, b)
	if len(joined) == 0 {
		return SimilarityResult{Similarity: math.NaN()}, nil
	}

	agree := 0
	for _, row := range joined {
		if flagsA[row.Left] == flagsB[row.Right] {
			agree++
		}
	}

	return SimilarityResult{
		Similarity: float64(agree) / float64(len(joined)),
		Days:       len(joined),
	}, nil
}
