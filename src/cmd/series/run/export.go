package run

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/jiaming2012/market-stats/src/indicators"
)

type SurgeRecordCSV struct {
	Date   string  `csv:"Date"`
	Close  float64 `csv:"Close"`
	Return float64 `csv:"Return"`
}

// ExportSurges writes the surge records to outFile, replacing any existing file.
func ExportSurges(records []indicators.SurgeRecord, outFile string) error {
	rows := make([]*SurgeRecordCSV, len(records))
	for i, r := range records {
		rows[i] = &SurgeRecordCSV{
			Date:   r.Row.DateLabel,
			Close:  r.Row.Close,
			Return: r.Return,
		}
	}

	file, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("ExportSurges: failed to create %s: %w", outFile, err)
	}

	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("ExportSurges: failed to write %s: %w", outFile, err)
	}

	return nil
}
