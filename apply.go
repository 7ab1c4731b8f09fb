package accounting

import (
	"fmt"
	"slices"
)

// Apply validates an event against the current state and folds its effect
// into the book, bumping Revision. Validation failures leave the book
// untouched. The effect of each event is fixed and deterministic, so two
// books that absorb the same events in the same order end up Equal.
func (b *Book) Apply(evt Event) error {
	fixed, err := evt.Validate(b)
	if err != nil {
		return err
	}
	switch v := fixed.(type) {
	case PutCategory:
		b.Categories = putByID(b.Categories, v.Category, func(c Category) string { return c.ID })
	case DeleteCategory:
		b.Categories = deleteByID(b.Categories, v.Category, func(c Category) string { return c.ID })
	case PutAccount:
		b.Accounts = putByID(b.Accounts, v.Account, func(a Account) string { return a.ID })
	case DeleteAccount:
		b.Accounts = deleteByID(b.Accounts, v.Account, func(a Account) string { return a.ID })
	case PutTransaction:
		b.Transactions = putByID(b.Transactions, v.Transaction, func(t Transaction) string { return t.ID })
	case DeleteTransaction:
		b.Transactions = deleteByID(b.Transactions, v.Transaction, func(t Transaction) string { return t.ID })
	case PutSpecies:
		b.Species = putByID(b.Species, v.Species, func(s AnimalSpecies) string { return s.ID })
	case DeleteSpecies:
		// Logs keep their speciesId and render as "Archived Species".
		b.Species = deleteByID(b.Species, v.Species, func(s AnimalSpecies) string { return s.ID })
	case PutItem:
		b.Items = putByID(b.Items, v.Item, func(i InventoryItem) string { return i.ID })
	case DeleteItem:
		b.Items = deleteByID(b.Items, v.Item, func(i InventoryItem) string { return i.ID })
	case PutAsset:
		b.Assets = putByID(b.Assets, v.Asset, func(a Asset) string { return a.ID })
	case DeleteAsset:
		b.Assets = deleteByID(b.Assets, v.Asset, func(a Asset) string { return a.ID })
	case PutLiability:
		b.Liabilities = putByID(b.Liabilities, v.Liability, func(l Liability) string { return l.ID })
	case DeleteLiability:
		b.Liabilities = deleteByID(b.Liabilities, v.Liability, func(l Liability) string { return l.ID })
	case RecordAnimalLog:
		b.AnimalLogs = append(b.AnimalLogs, v.Log)
		b.adjustHerd(v.Log)
	case RecordMovement:
		b.Movements = append(b.Movements, v.Movement)
		b.adjustStock(v.Movement)
	case RecordPayment:
		b.payLiability(v)
	case SetNavItems:
		b.NavItems = slices.Clone(v.Items)
	case SetCompactLayout:
		b.CompactLayout = v.Compact
	default:
		return fmt.Errorf("unknown event type %q", evt.What())
	}
	b.Revision++
	return nil
}

// putByID replaces the element carrying v's id, or appends v when the id is
// new.
func putByID[T any](list []T, v T, id func(T) string) []T {
	for i := range list {
		if id(list[i]) == id(v) {
			list[i] = v
			return list
		}
	}
	return append(list, v)
}

func deleteByID[T any](list []T, key string, id func(T) string) []T {
	return slices.DeleteFunc(list, func(e T) bool { return id(e) == key })
}

// adjustHerd folds one log into the species head count, clamping at zero: a
// death or sale can never drive a herd negative, whatever order the logs
// arrive in. An unresolved species is a no-op.
func (b *Book) adjustHerd(l AnimalLog) {
	s := b.SpeciesByID(l.Species)
	if s == nil {
		return
	}
	if l.Type.Increases() {
		s.Count = s.Count.Add(l.Quantity)
		return
	}
	s.Count = s.Count.Sub(l.Quantity)
	if s.Count.IsNegative() {
		s.Count = Q(0)
	}
}

// adjustStock folds one movement into the item quantity, clamping at zero.
// An unresolved item is a no-op.
func (b *Book) adjustStock(m InventoryMovement) {
	i := b.Item(m.Item)
	if i == nil {
		return
	}
	if m.Type == StockIn {
		i.Quantity = i.Quantity.Add(m.Quantity)
		return
	}
	i.Quantity = i.Quantity.Sub(m.Quantity)
	if i.Quantity.IsNegative() {
		i.Quantity = Q(0)
	}
}

// payLiability applies a validated payment: the balance decrement and the
// matching expense transaction land together or not at all. Validation
// already capped the amount to the open balance.
func (b *Book) payLiability(p RecordPayment) {
	l := b.Liability(p.Liability)
	l.CurrentBalance = l.CurrentBalance.Sub(p.Amount)
	if l.CurrentBalance.IsNegative() {
		l.CurrentBalance = M(0, l.CurrentBalance.Currency())
	}
	b.Transactions = append(b.Transactions, Transaction{
		ID:          p.Transaction,
		Date:        p.Date,
		Description: "Payment towards: " + l.Name,
		Amount:      p.Amount,
		Category:    p.Category,
		Account:     p.Account,
		Type:        Expense,
	})
}
