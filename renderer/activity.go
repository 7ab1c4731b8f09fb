package renderer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	accounting "github.com/bumlambs-max/Accounting-2.0"
)

// ActivityMarkdown renders everything recorded in the range as a log:
// transactions, animal events and stock movements, newest first.
// Sections with nothing in them are left out entirely.
func ActivityMarkdown(b *accounting.Book, r accounting.Range) string {
	var sb strings.Builder
	snap := b.NewSnapshot(r.To)

	fmt.Fprintf(&sb, "# Activity from %s to %s\n\n", r.From, r.To)

	ConditionalBlock(&sb, func(w io.Writer) bool {
		txs := make([]accounting.Transaction, 0, len(b.Transactions))
		for _, tx := range b.Transactions {
			if r.Contains(tx.Date) {
				txs = append(txs, tx)
			}
		}
		if len(txs) == 0 {
			return false
		}
		sort.SliceStable(txs, func(i, j int) bool { return txs[j].Date.Before(txs[i].Date) })

		fmt.Fprintf(w, "## Transactions\n\n")
		fmt.Fprintf(w, "| Date | Description | Category | Account | Amount |\n")
		fmt.Fprintf(w, "|:---|:---|:---|:---|---:|\n")
		for _, tx := range txs {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
				tx.Date, tx.Description, snap.CategoryName(tx.Category),
				snap.AccountName(tx.Account), signedAmount(tx))
		}
		fmt.Fprintf(w, "\n")
		return true
	})

	ConditionalBlock(&sb, func(w io.Writer) bool {
		logs := make([]accounting.AnimalLog, 0, len(b.AnimalLogs))
		for _, l := range b.AnimalLogs {
			if r.Contains(l.Date) {
				logs = append(logs, l)
			}
		}
		if len(logs) == 0 {
			return false
		}
		sort.SliceStable(logs, func(i, j int) bool { return logs[j].Date.Before(logs[i].Date) })

		fmt.Fprintf(w, "## Animal Events\n\n")
		fmt.Fprintf(w, "| Date | Species | Event | Quantity | Note |\n")
		fmt.Fprintf(w, "|:---|:---|:---|---:|:---|\n")
		for _, l := range logs {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
				l.Date, snap.SpeciesName(l.Species), l.Type, l.Quantity, l.Note)
		}
		fmt.Fprintf(w, "\n")
		return true
	})

	ConditionalBlock(&sb, func(w io.Writer) bool {
		moves := make([]accounting.InventoryMovement, 0, len(b.Movements))
		for _, m := range b.Movements {
			if r.Contains(m.Date) {
				moves = append(moves, m)
			}
		}
		if len(moves) == 0 {
			return false
		}
		sort.SliceStable(moves, func(i, j int) bool { return moves[j].Date.Before(moves[i].Date) })

		fmt.Fprintf(w, "## Stock Movements\n\n")
		fmt.Fprintf(w, "| Date | Item | Direction | Quantity | Note |\n")
		fmt.Fprintf(w, "|:---|:---|:---|---:|:---|\n")
		for _, m := range moves {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
				m.Date, itemName(b, m.Item), m.Type, m.Quantity, m.Note)
		}
		fmt.Fprintf(w, "\n")
		return true
	})

	return sb.String()
}

// TransactionsMarkdown renders just the money transactions in the range,
// newest first.
func TransactionsMarkdown(b *accounting.Book, r accounting.Range) string {
	snap := b.NewSnapshot(r.To)
	txs := make([]accounting.Transaction, 0, len(b.Transactions))
	for _, tx := range b.Transactions {
		if r.Contains(tx.Date) {
			txs = append(txs, tx)
		}
	}
	if len(txs) == 0 {
		return fmt.Sprintf("No transactions between %s and %s.\n", r.From, r.To)
	}
	sort.SliceStable(txs, func(i, j int) bool { return txs[j].Date.Before(txs[i].Date) })

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Transactions from %s to %s\n\n", r.From, r.To)
	fmt.Fprintf(&sb, "| ID | Date | Description | Category | Account | Amount |\n")
	fmt.Fprintf(&sb, "|:---|:---|:---|:---|:---|---:|\n")
	for _, tx := range txs {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n",
			tx.ID, tx.Date, tx.Description, snap.CategoryName(tx.Category),
			snap.AccountName(tx.Account), signedAmount(tx))
	}
	return sb.String()
}

func itemName(b *accounting.Book, id string) string {
	if item := b.Item(id); item != nil {
		return item.Name
	}
	return "Archived Item"
}

// signedAmount shows expenses as negative amounts, incomes as positive.
func signedAmount(tx accounting.Transaction) string {
	if tx.Type == accounting.Expense {
		return tx.Amount.Neg().SignedString()
	}
	return tx.Amount.SignedString()
}
