package accounting

import (
	"iter"
	"sort"
	"strings"
)

// Snapshot represents a view of the books at a single point in time. It is a
// stateless calculator that computes every aggregate on the fly from the
// book's collections; nothing is cached or stored, so a snapshot can never
// disagree with the book it was taken from.
//
// Dated flows (transactions, logs) are filtered to the snapshot date;
// materialized state (herd counts, stock quantities, balances on assets and
// liabilities) is read as it stands.
type Snapshot struct {
	book *Book
	on   Date
}

// NewSnapshot returns a snapshot of the book on the given date.
func (b *Book) NewSnapshot(on Date) *Snapshot {
	return &Snapshot{book: b, on: on}
}

// On returns the date of the snapshot.
func (s *Snapshot) On() Date {
	return s.on
}

// transactions returns an iterator over the book's transactions dated on or
// before the snapshot date. Order is insertion order; no sorting is assumed.
func (s *Snapshot) transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, t := range s.book.Transactions {
			if t.Date.After(s.on) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// AccountBalance returns the account's initial balance plus every signed
// transaction booked against it up to the snapshot date. An unknown account
// has a zero balance.
func (s *Snapshot) AccountBalance(account string) Money {
	a := s.book.Account(account)
	if a == nil {
		return Money{}
	}
	balance := a.InitialBalance
	for t := range s.transactions() {
		if t.Account == account {
			balance = balance.Add(t.signed())
		}
	}
	return balance
}

// TotalCash returns the sum of all account balances.
func (s *Snapshot) TotalCash() Money {
	var total Money
	for _, a := range s.book.Accounts {
		total = total.Add(s.AccountBalance(a.ID))
	}
	return total
}

// CashflowSummary returns total income and total expense up to the snapshot
// date. Both are non-negative by construction.
func (s *Snapshot) CashflowSummary() (income, expense Money) {
	for t := range s.transactions() {
		switch t.Type {
		case Income:
			income = income.Add(t.Amount)
		case Expense:
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense
}

// GrossMargin returns (income-expense)/income as a percentage. With no
// income there is no margin to speak of, so it returns 0.
func (s *Snapshot) GrossMargin() Percent {
	income, expense := s.CashflowSummary()
	if income.IsZero() {
		return 0
	}
	return percentOf(income.Sub(expense), income)
}

// BreakevenProgress returns how far income has come towards covering
// expenses, capped at 100. With nothing spent there is nothing left to
// cover, so it returns 100.
func (s *Snapshot) BreakevenProgress() Percent {
	income, expense := s.CashflowSummary()
	if expense.IsZero() {
		return 100
	}
	p := percentOf(income, expense)
	if p > 100 {
		return 100
	}
	return p
}

// BreakevenGap returns how much more income is needed to cover expenses,
// never negative.
func (s *Snapshot) BreakevenGap() Money {
	income, expense := s.CashflowSummary()
	if expense.LessThanOrEqual(income) {
		return M(0, cur(income, expense))
	}
	return expense.Sub(income)
}

// CategoryTotal is one line of a spending breakdown.
type CategoryTotal struct {
	Name  string
	Total Money
}

// TopExpenseCategories returns the n largest expense buckets up to the
// snapshot date, largest first. Transactions whose category is gone are
// pooled under "Other". Ties keep the order the categories first appeared
// in, so repeated calls render identically.
func (s *Snapshot) TopExpenseCategories(n int) []CategoryTotal {
	totals := make(map[string]Money)
	var names []string // first-seen order, for a stable sort
	for t := range s.transactions() {
		if t.Type != Expense {
			continue
		}
		name := s.CategoryName(t.Category)
		if _, seen := totals[name]; !seen {
			names = append(names, name)
		}
		totals[name] = totals[name].Add(t.Amount)
	}
	buckets := make([]CategoryTotal, 0, len(names))
	for _, name := range names {
		buckets = append(buckets, CategoryTotal{Name: name, Total: totals[name]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Total.GreaterThan(buckets[j].Total)
	})
	if n > 0 && len(buckets) > n {
		buckets = buckets[:n]
	}
	return buckets
}

// LivestockValue returns the herd's worth: count times estimated per-head
// value, summed over every species.
func (s *Snapshot) LivestockValue() Money {
	var total Money
	for _, sp := range s.book.Species {
		total = total.Add(sp.EstimatedValue.Mul(sp.Count))
	}
	return total
}

// InventoryValue returns the stock's worth: quantity times unit cost, summed
// over every item.
func (s *Snapshot) InventoryValue() Money {
	var total Money
	for _, i := range s.book.Items {
		total = total.Add(i.UnitCost.Mul(i.Quantity))
	}
	return total
}

// AssetValue returns the sum of the current values of all fixed assets.
func (s *Snapshot) AssetValue() Money {
	var total Money
	for _, a := range s.book.Assets {
		total = total.Add(a.CurrentValue)
	}
	return total
}

// TotalLiabilities returns the sum of all open debt balances.
func (s *Snapshot) TotalLiabilities() Money {
	var total Money
	for _, l := range s.book.Liabilities {
		total = total.Add(l.CurrentBalance)
	}
	return total
}

// NetWorth returns cash plus livestock, inventory and fixed assets, minus
// open debts.
func (s *Snapshot) NetWorth() Money {
	return s.TotalCash().
		Add(s.LivestockValue()).
		Add(s.InventoryValue()).
		Add(s.AssetValue()).
		Sub(s.TotalLiabilities())
}

// UpcomingPayment is one debt needing attention: the liability, the amount
// its next payment takes, and how pressing the due date is.
type UpcomingPayment struct {
	Liability Liability
	AmountDue Money // the installment, or the balance when less remains
	Status    DueStatus
}

// DebtSummary is the dashboard's view of outstanding debt.
type DebtSummary struct {
	TotalOutstanding Money
	Upcoming         []UpcomingPayment // due within 30 days or already past due
	TotalDueSoon     Money
}

// DebtSummary scans liabilities for payments falling due within the next 30
// days of the snapshot date, overdue ones included. A settled debt never
// shows up whatever its due date says. The amount due is the installment
// capped at the open balance, and all comparisons are on whole days.
func (s *Snapshot) DebtSummary() DebtSummary {
	var sum DebtSummary
	horizon := s.on.Add(30)
	for _, l := range s.book.Liabilities {
		sum.TotalOutstanding = sum.TotalOutstanding.Add(l.CurrentBalance)
		if !l.CurrentBalance.IsPositive() {
			continue
		}
		if l.DueDate.IsZero() || l.DueDate.After(horizon) {
			continue
		}
		due := l.InstallmentAmount
		if due.IsZero() || due.GreaterThan(l.CurrentBalance) {
			due = l.CurrentBalance
		}
		sum.Upcoming = append(sum.Upcoming, UpcomingPayment{
			Liability: l,
			AmountDue: due,
			Status:    s.DueStatus(l.DueDate, l.CurrentBalance),
		})
		sum.TotalDueSoon = sum.TotalDueSoon.Add(due)
	}
	sort.SliceStable(sum.Upcoming, func(i, j int) bool {
		return sum.Upcoming[i].Liability.DueDate.Before(sum.Upcoming[j].Liability.DueDate)
	})
	return sum
}

// DueStatus classifies a due date as seen from the snapshot date. A debt
// with nothing left to pay is NORMAL whatever the date says; otherwise past
// dates are OVERDUE, today is DUE_TODAY, anything within a week is DUE_SOON.
func (s *Snapshot) DueStatus(due Date, balance Money) DueStatus {
	if !balance.IsPositive() || due.IsZero() {
		return Normal
	}
	switch {
	case due.Before(s.on):
		return Overdue
	case due == s.on:
		return DueToday
	case !due.After(s.on.Add(7)):
		return DueSoon
	default:
		return Normal
	}
}

// SpeciesDeaths is one species' death toll within a mortality window.
type SpeciesDeaths struct {
	Species string // species id; the species itself may be gone
	Name    string
	Deaths  Quantity
}

// MortalitySummary aggregates death logs over a lookback window.
type MortalitySummary struct {
	Window    Range
	Total     Quantity
	BySpecies []SpeciesDeaths
}

// Mortality sums DEATH log quantities over the lookback window ending on the
// snapshot date. A non-empty filter narrows the count to species whose name
// contains it, case-insensitively; logs of archived species match under
// their "Archived Species" label. Species appear in the order their first
// death was logged.
func (s *Snapshot) Mortality(lookbackDays int, filter string) MortalitySummary {
	sum := MortalitySummary{Window: NewRange(s.on.Add(-lookbackDays), s.on)}
	filter = strings.ToLower(filter)
	deaths := make(map[string]int) // species id -> index in BySpecies
	for _, l := range s.book.AnimalLogs {
		if l.Type != Death || !sum.Window.Contains(l.Date) {
			continue
		}
		name := s.SpeciesName(l.Species)
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		i, seen := deaths[l.Species]
		if !seen {
			i = len(sum.BySpecies)
			deaths[l.Species] = i
			sum.BySpecies = append(sum.BySpecies, SpeciesDeaths{Species: l.Species, Name: name})
		}
		sum.BySpecies[i].Deaths = sum.BySpecies[i].Deaths.Add(l.Quantity)
		sum.Total = sum.Total.Add(l.Quantity)
	}
	return sum
}

// AccountName resolves an account id for display. Transactions outlive their
// account, so a dangling reference renders as "Unknown Account" rather than
// failing.
func (s *Snapshot) AccountName(id string) string {
	if a := s.book.Account(id); a != nil {
		return a.Name
	}
	return "Unknown Account"
}

// CategoryName resolves a category id for display, pooling dangling
// references under "Other".
func (s *Snapshot) CategoryName(id string) string {
	if c := s.book.Category(id); c != nil {
		return c.Name
	}
	return "Other"
}

// SpeciesName resolves a species id for display. Logs of a deleted species
// render as "Archived Species".
func (s *Snapshot) SpeciesName(id string) string {
	if sp := s.book.SpeciesByID(id); sp != nil {
		return sp.Name
	}
	return "Archived Species"
}
