package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/google/subcommands"
)

type moveCmd struct {
	item     string
	typ      string
	quantity string
	note     string
	date     string
	memo     string
}

func (*moveCmd) Name() string     { return "move" }
func (*moveCmd) Synopsis() string { return "record a stock movement in or out" }
func (*moveCmd) Usage() string {
	return `fbk move -i <item> -type <in|out> -q <n> [-note <text>] [-d <date>] [-m <memo>]

  Records a stock movement and adjusts the item quantity. Outgoing stock
  never drives the quantity below zero.
`
}

func (c *moveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.item, "i", "", "Item id or name")
	f.StringVar(&c.typ, "type", "", "Movement direction: in or out")
	f.StringVar(&c.quantity, "q", "", "Quantity moved")
	f.StringVar(&c.note, "note", "", "A note on the movement (e.g., 'fed to calves')")
	f.StringVar(&c.date, "d", accounting.Today().String(), "Movement date (YYYY-MM-DD)")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the event")
}

func (c *moveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == "" || c.typ == "" || c.quantity == "" {
		fmt.Fprintln(os.Stderr, "Error: -i, -type, and -q flags are all required.")
		return subcommands.ExitUsageError
	}
	typ, err := accounting.ParseMovementType(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	quantity, err := parseQuantity(c.quantity)
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
	item, err := resolveItem(b, c.item)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	evt := accounting.NewRecordMovement(day, c.memo, accounting.InventoryMovement{
		Item:     item,
		Type:     typ,
		Quantity: quantity,
		Note:     c.note,
		Date:     day,
	})
	if err := b.Apply(evt); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	i := b.Item(item)
	fmt.Printf("Recorded stock %s of %s %s on %s, stock now %s.\n", typ, quantity, i.Name, day, i.Quantity)
	return subcommands.ExitSuccess
}
