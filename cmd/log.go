package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/google/subcommands"
)

type logCmd struct {
	species  string
	typ      string
	quantity string
	value    string
	note     string
	date     string
	memo     string
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "record an animal event: bought, birth, sold or death" }
func (*logCmd) Usage() string {
	return `fbk log -s <species> -type <bought|birth|sold|death> -q <n> [-value <per-head>] [-note <text>] [-d <date>] [-m <memo>]

  Records a herd event and adjusts the species headcount. Sales and deaths
  never drive the count below zero. The per-head value defaults to the
  species' current estimate.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.species, "s", "", "Species id or name")
	f.StringVar(&c.typ, "type", "", "Event type: bought, birth, sold or death")
	f.StringVar(&c.quantity, "q", "", "Number of animals")
	f.StringVar(&c.value, "value", "0", "Value per head at the time, defaults to the species estimate")
	f.StringVar(&c.note, "note", "", "A note on the event")
	f.StringVar(&c.date, "d", accounting.Today().String(), "Event date (YYYY-MM-DD)")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the event")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.species == "" || c.typ == "" || c.quantity == "" {
		fmt.Fprintln(os.Stderr, "Error: -s, -type, and -q flags are all required.")
		return subcommands.ExitUsageError
	}
	typ, err := accounting.ParseLogType(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	quantity, err := parseQuantity(c.quantity)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	value, err := parseMoney(c.value)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	day, err := accounting.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	species, err := resolveSpecies(b, c.species)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	evt := accounting.NewRecordAnimalLog(day, c.memo, accounting.AnimalLog{
		Species:     species,
		Date:        day,
		Type:        typ,
		Quantity:    quantity,
		Note:        c.note,
		ValueAtTime: value,
	})
	if err := b.Apply(evt); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	s := b.SpeciesByID(species)
	fmt.Printf("Recorded %s of %s %s on %s, herd now %s head.\n", typ, quantity, s.Name, day, s.Count)
	return subcommands.ExitSuccess
}
