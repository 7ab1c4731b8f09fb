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

type assetCmd struct{}

func (*assetCmd) Name() string     { return "asset" }
func (*assetCmd) Synopsis() string { return "manage fixed assets" }
func (*assetCmd) Usage() string {
	return `fbk asset <add|list> [flags]

  Manages the fixed asset register: land, machinery, buildings.
`
}
func (*assetCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assetCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cdr := subcommands.NewCommander(f, "asset")
	cdr.Register(&assetAddCmd{}, "")
	cdr.Register(&assetListCmd{}, "")
	return cdr.Execute(ctx, args...)
}

type assetAddCmd struct {
	name        string
	category    string
	price       string
	value       string
	purchased   string
	description string
	memo        string
}

func (*assetAddCmd) Name() string     { return "add" }
func (*assetAddCmd) Synopsis() string { return "add a fixed asset" }
func (*assetAddCmd) Usage() string {
	return `fbk asset add -name <name> [-cat <category>] [-price <amount>] [-value <amount>] [-purchased <date>] [-desc <text>] [-m <memo>]

  Adds a fixed asset. The current value defaults to the purchase price.
`
}

func (c *assetAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Asset name (e.g., 'Tractor')")
	f.StringVar(&c.category, "cat", "", "Free form category (e.g., 'Machinery')")
	f.StringVar(&c.price, "price", "0", "Purchase price, in the configured currency")
	f.StringVar(&c.value, "value", "", "Current value, defaults to the purchase price")
	f.StringVar(&c.purchased, "purchased", accounting.Today().String(), "Purchase date (YYYY-MM-DD)")
	f.StringVar(&c.description, "desc", "", "Asset description")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the event")
}

func (c *assetAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name flag is required.")
		return subcommands.ExitUsageError
	}
	price, err := parseMoney(c.price)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	value := price
	if c.value != "" {
		if value, err = parseMoney(c.value); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
	}
	purchased, err := accounting.ParseDate(c.purchased)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	evt := accounting.NewPutAsset(accounting.Today(), c.memo, accounting.Asset{
		Name:          c.name,
		Category:      c.category,
		PurchaseDate:  purchased,
		PurchasePrice: price,
		CurrentValue:  value,
		Description:   c.description,
	})
	if status := applyAndSave(evt); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Added asset %q valued at %s.\n", c.name, value)
	return subcommands.ExitSuccess
}

type assetListCmd struct{}

func (*assetListCmd) Name() string     { return "list" }
func (*assetListCmd) Synopsis() string { return "list fixed assets" }
func (*assetListCmd) Usage() string {
	return `fbk asset list

  Lists all fixed assets.
`
}
func (*assetListCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assetListCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AssetsMarkdown(b))
	return subcommands.ExitSuccess
}
