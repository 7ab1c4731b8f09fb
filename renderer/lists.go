package renderer

import (
	"bytes"
	"fmt"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	md "github.com/nao1215/markdown"
)

// CategoriesMarkdown renders the category list.
func CategoriesMarkdown(b *accounting.Book) string {
	if len(b.Categories) == 0 {
		return "No categories yet.\n"
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"ID", "Name", "Type"},
	}
	for _, c := range b.Categories {
		table.Rows = append(table.Rows, []string{c.ID, c.Name, string(c.Type)})
	}
	doc.H1("Categories")
	doc.Table(table)
	return doc.String()
}

// AccountsMarkdown renders the account list with balances as of the given
// date.
func AccountsMarkdown(b *accounting.Book, on accounting.Date) string {
	if len(b.Accounts) == 0 {
		return "No accounts yet.\n"
	}
	snap := b.NewSnapshot(on)
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"ID", "Name", "Type", "Balance"},
	}
	for _, a := range b.Accounts {
		table.Rows = append(table.Rows, []string{
			a.ID, a.Name, string(a.Type), snap.AccountBalance(a.ID).String(),
		})
	}
	doc.H1(fmt.Sprintf("Accounts on %s", on))
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("Total Cash: %s", snap.TotalCash()))
	return doc.String()
}

// SpeciesMarkdown renders the herd list with per-head and total values.
func SpeciesMarkdown(b *accounting.Book) string {
	if len(b.Species) == 0 {
		return "No species yet.\n"
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"ID", "Species", "Count", "Per Head", "Value"},
	}
	for _, s := range b.Species {
		name := s.Name
		if s.Breed != "" {
			name += " (" + s.Breed + ")"
		}
		table.Rows = append(table.Rows, []string{
			s.ID, name, s.Count.String(), s.EstimatedValue.String(),
			s.EstimatedValue.Mul(s.Count).String(),
		})
	}
	doc.H1("Livestock")
	doc.Table(table)
	return doc.String()
}

// ItemsMarkdown renders the inventory list with stock values.
func ItemsMarkdown(b *accounting.Book) string {
	if len(b.Items) == 0 {
		return "No inventory items yet.\n"
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"ID", "Item", "Term", "Quantity", "Unit Cost", "Value"},
	}
	for _, i := range b.Items {
		table.Rows = append(table.Rows, []string{
			i.ID, i.Name, string(i.AssetTerm), i.Quantity.String(),
			i.UnitCost.String(), i.UnitCost.Mul(i.Quantity).String(),
		})
	}
	doc.H1("Inventory")
	doc.Table(table)
	return doc.String()
}

// AssetsMarkdown renders the fixed asset register.
func AssetsMarkdown(b *accounting.Book) string {
	if len(b.Assets) == 0 {
		return "No fixed assets yet.\n"
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"ID", "Asset", "Category", "Purchased", "Price", "Current Value"},
	}
	for _, a := range b.Assets {
		table.Rows = append(table.Rows, []string{
			a.ID, a.Name, a.Category, a.PurchaseDate.String(),
			a.PurchasePrice.String(), a.CurrentValue.String(),
		})
	}
	doc.H1("Fixed Assets")
	doc.Table(table)
	return doc.String()
}

// LiabilitiesMarkdown renders the liability register with due statuses as
// of the given date.
func LiabilitiesMarkdown(b *accounting.Book, on accounting.Date) string {
	if len(b.Liabilities) == 0 {
		return "No liabilities yet.\n"
	}
	snap := b.NewSnapshot(on)
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"ID", "Liability", "Original", "Balance", "Due", "Status"},
	}
	for _, l := range b.Liabilities {
		due := ""
		if !l.DueDate.IsZero() {
			due = l.DueDate.String()
		}
		table.Rows = append(table.Rows, []string{
			l.ID, l.Name, l.OriginalAmount.String(), l.CurrentBalance.String(),
			due, string(snap.DueStatus(l.DueDate, l.CurrentBalance)),
		})
	}
	doc.H1(fmt.Sprintf("Liabilities on %s", on))
	doc.Table(table)
	return doc.String()
}
