package renderer

import (
	"bytes"
	"fmt"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	md "github.com/nao1215/markdown"
)

// DebtsMarkdown renders the debt schedule as of the given date.
func DebtsMarkdown(b *accounting.Book, on accounting.Date) string {
	snap := b.NewSnapshot(on)
	debts := snap.DebtSummary()

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Debt Schedule on %s", on))
	if debts.TotalOutstanding.IsZero() {
		doc.PlainText("No outstanding debts.")
		return doc.String()
	}

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header: []string{
			md.Bold("Total Outstanding"),
			md.Bold(debts.TotalOutstanding.String()),
		},
		Rows: [][]string{
			{"Due within 30 days", debts.TotalDueSoon.String()},
		},
	})

	if len(debts.Upcoming) > 0 {
		doc.H2("Upcoming Payments")
		doc.Table(upcomingTable(debts.Upcoming))
	}

	return doc.String()
}

// upcomingTable renders due payments, soonest first.
func upcomingTable(upcoming []accounting.UpcomingPayment) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Liability", "Due", "Status", "Balance", "Amount Due"},
	}
	for _, up := range upcoming {
		table.Rows = append(table.Rows, []string{
			up.Liability.Name,
			up.Liability.DueDate.String(),
			string(up.Status),
			up.Liability.CurrentBalance.String(),
			up.AmountDue.String(),
		})
	}
	return table
}
