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

type categoryCmd struct{}

func (*categoryCmd) Name() string     { return "category" }
func (*categoryCmd) Synopsis() string { return "manage income and expense categories" }
func (*categoryCmd) Usage() string {
	return `fbk category <add|list> [flags]

  Manages the categories transactions are booked against.
`
}
func (*categoryCmd) SetFlags(_ *flag.FlagSet) {}

func (c *categoryCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cdr := subcommands.NewCommander(f, "category")
	cdr.Register(&categoryAddCmd{}, "")
	cdr.Register(&categoryListCmd{}, "")
	return cdr.Execute(ctx, args...)
}

type categoryAddCmd struct {
	name  string
	typ   string
	color string
	memo  string
}

func (*categoryAddCmd) Name() string     { return "add" }
func (*categoryAddCmd) Synopsis() string { return "add an income or expense category" }
func (*categoryAddCmd) Usage() string {
	return `fbk category add -name <name> -type <income|expense> [-color <hex>] [-m <memo>]

  Adds a category. The type decides how transactions in it count in the
  cashflow reports.
`
}

func (c *categoryAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Category name (e.g., 'Feed')")
	f.StringVar(&c.typ, "type", "", "Entry type: income or expense")
	f.StringVar(&c.color, "color", "", "Display color (e.g., '#4caf50')")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the event")
}

func (c *categoryAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.typ == "" {
		fmt.Fprintln(os.Stderr, "Error: -name and -type flags are required.")
		return subcommands.ExitUsageError
	}
	typ, err := accounting.ParseEntryType(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	evt := accounting.NewPutCategory(accounting.Today(), c.memo, accounting.Category{
		Name:  c.name,
		Type:  typ,
		Color: c.color,
	})
	if status := applyAndSave(evt); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Added category %q (%s).\n", c.name, typ)
	return subcommands.ExitSuccess
}

type categoryListCmd struct{}

func (*categoryListCmd) Name() string     { return "list" }
func (*categoryListCmd) Synopsis() string { return "list categories with their ids" }
func (*categoryListCmd) Usage() string {
	return `fbk category list

  Lists all categories.
`
}
func (*categoryListCmd) SetFlags(_ *flag.FlagSet) {}

func (c *categoryListCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CategoriesMarkdown(b))
	return subcommands.ExitSuccess
}
