package renderer

import (
	"bytes"
	"fmt"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	md "github.com/nao1215/markdown"
)

// defaultMortalityLookback is how far back the summary looks, in days.
const defaultMortalityLookback = 90

// MortalityMarkdown renders death counts over the lookback window ending
// on the given date. A non-empty filter narrows the report to species
// whose name contains it.
func MortalityMarkdown(b *accounting.Book, on accounting.Date, lookbackDays int, filter string) string {
	if lookbackDays <= 0 {
		lookbackDays = defaultMortalityLookback
	}
	snap := b.NewSnapshot(on)
	mort := snap.Mortality(lookbackDays, filter)

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Mortality between %s and %s", mort.Window.From, mort.Window.To))
	if filter != "" {
		doc.PlainText(fmt.Sprintf("Species matching %q.", filter))
	}

	if mort.Total.IsZero() {
		doc.PlainText("No deaths recorded in this window.")
		return doc.String()
	}

	doc.PlainText(fmt.Sprintf("Total deaths: %s", mort.Total))
	doc.Table(deathsTable(mort.BySpecies))

	return doc.String()
}

// deathsTable renders per-species death counts in first-death order.
func deathsTable(deaths []accounting.SpeciesDeaths) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Species", "Deaths"},
	}
	for _, sd := range deaths {
		table.Rows = append(table.Rows, []string{sd.Name, sd.Deaths.String()})
	}
	return table
}
