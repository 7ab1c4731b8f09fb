package accounting

import (
	"fmt"
	"strings"
)

// EntryType classifies categories and transactions as money coming in or
// going out of the farm.
type EntryType string

const (
	Income  EntryType = "INCOME"
	Expense EntryType = "EXPENSE"
)

// ParseEntryType parses a string into an EntryType.
func ParseEntryType(s string) (EntryType, error) {
	switch t := EntryType(strings.ToUpper(strings.TrimSpace(s))); t {
	case Income, Expense:
		return t, nil
	default:
		return "", fmt.Errorf("unknown entry type %q, want INCOME or EXPENSE", s)
	}
}

// AccountType identifies the kind of account money moves through.
type AccountType string

const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"
	Cash     AccountType = "CASH"
	Credit   AccountType = "CREDIT"
)

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(strings.ToUpper(strings.TrimSpace(s))); t {
	case Checking, Savings, Cash, Credit:
		return t, nil
	default:
		return "", fmt.Errorf("unknown account type %q, want CHECKING, SAVINGS, CASH or CREDIT", s)
	}
}

// Category labels transactions. Its type restricts which transactions may
// reference it: an INCOME transaction can only point at an INCOME category.
type Category struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Type  EntryType `json:"type"`
	Color string    `json:"color,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface for Category.
func (c Category) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", c.ID)
	w.Append("name", c.Name)
	w.Append("type", c.Type)
	w.Optional("color", c.Color)
	return w.MarshalJSON()
}

func (c Category) Equal(o Category) bool { return c == o }

// Account is a place money sits. Its current balance is never stored, it is
// derived from the initial balance and the transaction history.
type Account struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Type           AccountType `json:"type"`
	InitialBalance Money       `json:"initialBalance"`
}

// MarshalJSON implements the json.Marshaler interface for Account.
func (a Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", a.ID)
	w.Append("name", a.Name)
	w.Append("type", a.Type)
	w.Append("initialBalance", a.InitialBalance)
	return w.MarshalJSON()
}

func (a Account) Equal(o Account) bool {
	return a.ID == o.ID && a.Name == o.Name && a.Type == o.Type && a.InitialBalance.Equal(o.InitialBalance)
}

// Transaction is a single ledger entry. Amount is always non-negative; the
// Type decides whether it counts for or against the account it references.
type Transaction struct {
	ID          string    `json:"id"`
	Date        Date      `json:"date"`
	Description string    `json:"description,omitempty"`
	Amount      Money     `json:"amount"`
	Category    string    `json:"categoryId"`
	Account     string    `json:"accountId"`
	Type        EntryType `json:"type"`
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Optional("description", t.Description)
	w.Append("amount", t.Amount)
	w.Append("categoryId", t.Category)
	w.Append("accountId", t.Account)
	w.Append("type", t.Type)
	return w.MarshalJSON()
}

func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID && t.Date == o.Date && t.Description == o.Description &&
		t.Amount.Equal(o.Amount) && t.Category == o.Category && t.Account == o.Account && t.Type == o.Type
}

// signed returns the amount with the sign implied by the entry type.
func (t Transaction) signed() Money {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}
