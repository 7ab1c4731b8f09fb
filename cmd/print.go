package cmd

import (
	"fmt"
	"strings"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"
)

// printMarkdown renders a markdown report to the terminal. When rendering
// fails the raw markdown is still readable, so print that instead.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// parseMoney parses a command line amount in the configured currency. The
// amount is kept as an exact decimal.
func parseMoney(s string) (accounting.Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return accounting.Money{}, fmt.Errorf("amount %q is not a number", s)
	}
	return accounting.M(d, config().Currency), nil
}

// parseQuantity parses a command line quantity.
func parseQuantity(s string) (accounting.Quantity, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return accounting.Quantity{}, fmt.Errorf("quantity %q is not a number", s)
	}
	return accounting.Q(d), nil
}
