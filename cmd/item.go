package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/bumlambs-max/Accounting-2.0/renderer"
	"github.com/google/subcommands"
)

type itemCmd struct{}

func (*itemCmd) Name() string     { return "item" }
func (*itemCmd) Synopsis() string { return "manage inventory items" }
func (*itemCmd) Usage() string {
	return `fbk item <add|list> [flags]

  Manages the inventory: feed, seed, supplies. Day-to-day stock changes go
  through 'fbk move'.
`
}
func (*itemCmd) SetFlags(_ *flag.FlagSet) {}

func (c *itemCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cdr := subcommands.NewCommander(f, "item")
	cdr.Register(&itemAddCmd{}, "")
	cdr.Register(&itemListCmd{}, "")
	return cdr.Execute(ctx, args...)
}

type itemAddCmd struct {
	name        string
	sku         string
	description string
	quantity    string
	cost        string
	term        string
	memo        string
}

func (*itemAddCmd) Name() string     { return "add" }
func (*itemAddCmd) Synopsis() string { return "add an inventory item" }
func (*itemAddCmd) Usage() string {
	return `fbk item add -name <name> [-sku <sku>] [-q <n>] [-cost <unit-cost>] [-term <short|long>] [-desc <text>] [-m <memo>]

  Adds a stock line. The quantity set here is the starting stock; movements
  take it from there.
`
}

func (c *itemAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Item name (e.g., 'Dairy Meal')")
	f.StringVar(&c.sku, "sku", "", "Stock keeping unit code")
	f.StringVar(&c.description, "desc", "", "Item description")
	f.StringVar(&c.quantity, "q", "0", "Starting stock quantity")
	f.StringVar(&c.cost, "cost", "0", "Unit cost, in the configured currency")
	f.StringVar(&c.term, "term", "short", "Asset term: short or long")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the event")
}

func (c *itemAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name flag is required.")
		return subcommands.ExitUsageError
	}
	quantity, err := parseQuantity(c.quantity)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	cost, err := parseMoney(c.cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	term, err := accounting.ParseAssetTerm(normalizeTerm(c.term))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	evt := accounting.NewPutItem(accounting.Today(), c.memo, accounting.InventoryItem{
		Name:        c.name,
		SKU:         c.sku,
		Description: c.description,
		Quantity:    quantity,
		UnitCost:    cost,
		AssetTerm:   term,
	})
	if status := applyAndSave(evt); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Added item %q with %s in stock at %s each.\n", c.name, quantity, cost)
	return subcommands.ExitSuccess
}

// normalizeTerm lets the flag take the short forms "short" and "long".
func normalizeTerm(s string) string {
	switch s {
	case "short":
		return string(accounting.ShortTerm)
	case "long":
		return string(accounting.LongTerm)
	}
	return s
}

type itemListCmd struct{}

func (*itemListCmd) Name() string     { return "list" }
func (*itemListCmd) Synopsis() string { return "list inventory items with stock values" }
func (*itemListCmd) Usage() string {
	return `fbk item list

  Lists all inventory items with quantities and values.
`
}
func (*itemListCmd) SetFlags(_ *flag.FlagSet) {}

func (c *itemListCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ItemsMarkdown(b))
	return subcommands.ExitSuccess
}
