// Package renderer formats farm books as markdown reports: the dashboard
// summary, the debt schedule, the mortality report and the activity log.
// Rendering to a terminal is the caller's business.
package renderer

import (
	"bytes"
	"fmt"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the dashboard summary of the book as of the
// given date.
func SummaryMarkdown(b *accounting.Book, on accounting.Date) string {
	snap := b.NewSnapshot(on)
	income, expense := snap.CashflowSummary()

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Farm Summary on %s", on))
	if b.Owner != "" {
		doc.PlainText(fmt.Sprintf("Books of %s", b.Owner))
	}

	doc.H2("Cash")
	cash := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Account", "Type", "Balance"},
	}
	for _, a := range b.Accounts {
		cash.Rows = append(cash.Rows, []string{
			a.Name, string(a.Type), snap.AccountBalance(a.ID).String(),
		})
	}
	doc.Table(cash)
	doc.PlainText(fmt.Sprintf("Total Cash: %s", snap.TotalCash()))

	doc.H2("Cashflow")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Income", income.String()},
			{"Expenses", expense.String()},
			{"Gross Margin", snap.GrossMargin().String()},
			{"Breakeven Progress", snap.BreakevenProgress().String()},
			{"Breakeven Gap", snap.BreakevenGap().String()},
		},
	})

	if top := snap.TopExpenseCategories(5); len(top) > 0 {
		doc.H2("Top Expenses")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Category", "Spent"},
		}
		for _, bucket := range top {
			table.Rows = append(table.Rows, []string{bucket.Name, bucket.Total.String()})
		}
		doc.Table(table)
	}

	doc.H2("Valuations")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Valuation", "Amount"},
		Rows: [][]string{
			{"Livestock", snap.LivestockValue().String()},
			{"Inventory", snap.InventoryValue().String()},
			{"Fixed Assets", snap.AssetValue().String()},
			{"Liabilities", snap.TotalLiabilities().Neg().String()},
			{md.Bold("Net Worth"), md.Bold(snap.NetWorth().String())},
		},
	})

	if debts := snap.DebtSummary(); len(debts.Upcoming) > 0 {
		doc.H2("Payments Due")
		doc.PlainText(fmt.Sprintf("Outstanding debt %s, of which %s falls due within 30 days.",
			debts.TotalOutstanding, debts.TotalDueSoon))
		doc.Table(upcomingTable(debts.Upcoming))
	}

	mort := snap.Mortality(defaultMortalityLookback, "")
	if !mort.Total.IsZero() {
		doc.H2("Mortality")
		doc.PlainText(fmt.Sprintf("%s deaths between %s and %s.",
			mort.Total, mort.Window.From, mort.Window.To))
		doc.Table(deathsTable(mort.BySpecies))
	}

	return doc.String()
}
