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

type speciesCmd struct{}

func (*speciesCmd) Name() string     { return "species" }
func (*speciesCmd) Synopsis() string { return "manage the herd lines" }
func (*speciesCmd) Usage() string {
	return `fbk species <add|list> [flags]

  Manages the herd: each species line tracks a headcount and a per-head
  value estimate. Day-to-day changes go through 'fbk log'.
`
}
func (*speciesCmd) SetFlags(_ *flag.FlagSet) {}

func (c *speciesCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cdr := subcommands.NewCommander(f, "species")
	cdr.Register(&speciesAddCmd{}, "")
	cdr.Register(&speciesListCmd{}, "")
	return cdr.Execute(ctx, args...)
}

type speciesAddCmd struct {
	name  string
	tag   string
	breed string
	count string
	value string
	memo  string
}

func (*speciesAddCmd) Name() string     { return "add" }
func (*speciesAddCmd) Synopsis() string { return "add a herd line" }
func (*speciesAddCmd) Usage() string {
	return `fbk species add -name <name> [-tag <tag>] [-breed <breed>] [-count <n>] [-value <per-head>] [-m <memo>]

  Adds a species line. The count set here is the starting headcount; animal
  logs move it from there.
`
}

func (c *speciesAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Species name (e.g., 'Cows')")
	f.StringVar(&c.tag, "tag", "", "Short tag for ear marks or pens")
	f.StringVar(&c.breed, "breed", "", "Breed (e.g., 'Holstein')")
	f.StringVar(&c.count, "count", "0", "Starting headcount")
	f.StringVar(&c.value, "value", "0", "Estimated value per head, in the configured currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the event")
}

func (c *speciesAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name flag is required.")
		return subcommands.ExitUsageError
	}
	count, err := parseQuantity(c.count)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	value, err := parseMoney(c.value)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	evt := accounting.NewPutSpecies(accounting.Today(), c.memo, accounting.AnimalSpecies{
		Name:           c.name,
		Tag:            c.tag,
		Breed:          c.breed,
		Count:          count,
		EstimatedValue: value,
	})
	if status := applyAndSave(evt); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Added species %q with %s head at %s each.\n", c.name, count, value)
	return subcommands.ExitSuccess
}

type speciesListCmd struct{}

func (*speciesListCmd) Name() string     { return "list" }
func (*speciesListCmd) Synopsis() string { return "list herd lines with counts and values" }
func (*speciesListCmd) Usage() string {
	return `fbk species list

  Lists all species lines with headcounts and values.
`
}
func (*speciesListCmd) SetFlags(_ *flag.FlagSet) {}

func (c *speciesListCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SpeciesMarkdown(b))
	return subcommands.ExitSuccess
}
