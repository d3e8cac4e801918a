package indicators

import (
	"github.com/jiaming2012/market-stats/src/models"
)

// Correlate is the Pearson correlation of the two Close columns over the
// dates both series share.
func Correlate(a, b *models.TimeSeries) (CorrelationResult, error) {
	return LeadLag(a, b, 0)
}
