package run

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jiaming2012/market-stats/src/indicators"
)

var printer = message.NewPrinter(language.English)

func FormatNumber(value *float64, digits int) string {
	if value == nil {
		return "n/a"
	}

	return printer.Sprintf(fmt.Sprintf("%%.%df", digits), *value)
}

func formatField(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case float64:
		return printer.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func newTable(out io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return table
}

// RenderKeyValues prints one row per key, sorted by key.
func RenderKeyValues(out io.Writer, values map[string]interface{}) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	table := newTable(out, []string{"Field", "Value"})
	for _, k := range keys {
		table.Append([]string{k, formatField(values[k])})
	}

	table.Render()
}

// RenderStat prints a single named statistic with the number of days behind it.
func RenderStat(out io.Writer, name string, value *float64, digits int, days int) {
	table := newTable(out, []string{name, "Days"})
	table.Append([]string{FormatNumber(value, digits), fmt.Sprintf("%d", days)})
	table.Render()
}

func RenderSurges(out io.Writer, records []indicators.SurgeRecord) {
	table := newTable(out, []string{"Date", "Close", "Return"})
	for _, r := range records {
		ret := indicators.OrNil(r.Return)
		table.Append([]string{r.Row.DateLabel, printer.Sprintf("%.2f", r.Row.Close), FormatNumber(ret, 4)})
	}

	table.SetFooter([]string{"", "Surges", fmt.Sprintf("%d", len(records))})
	table.Render()
}
