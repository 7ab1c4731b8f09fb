package accounting

import (
	"errors"
	"slices"
)

// ErrNotFound reports a missing entity in a book, or a missing snapshot in a
// remote store.
var ErrNotFound = errors.New("not found")

// NavItem is one dashboard module entry: its identity and whether the module
// is shown. Order in the slice is display order.
type NavItem struct {
	ID      string `json:"id"`
	Visible bool   `json:"visible"`
}

// Book is the complete state of a farm's books: every domain collection plus
// the dashboard layout, for one owner. It is the unit of persistence and of
// synchronization; aggregates are always derived from it on demand, never
// stored in it.
type Book struct {
	Owner         string
	Revision      uint64 // bumped on every applied event, see Apply
	CompactLayout bool
	NavItems      []NavItem

	Categories   []Category
	Accounts     []Account
	Transactions []Transaction
	Species      []AnimalSpecies
	AnimalLogs   []AnimalLog
	Items        []InventoryItem
	Movements    []InventoryMovement
	Assets       []Asset
	Liabilities  []Liability
}

// NewBook creates an empty book for the given owner.
func NewBook(owner string) *Book {
	return &Book{Owner: owner}
}

// Category returns the category with this id, or nil if unknown.
func (b *Book) Category(id string) *Category {
	for i := range b.Categories {
		if b.Categories[i].ID == id {
			return &b.Categories[i]
		}
	}
	return nil
}

// Account returns the account with this id, or nil if unknown.
func (b *Book) Account(id string) *Account {
	for i := range b.Accounts {
		if b.Accounts[i].ID == id {
			return &b.Accounts[i]
		}
	}
	return nil
}

// Transaction returns the transaction with this id, or nil if unknown.
func (b *Book) Transaction(id string) *Transaction {
	for i := range b.Transactions {
		if b.Transactions[i].ID == id {
			return &b.Transactions[i]
		}
	}
	return nil
}

// SpeciesByID returns the species with this id, or nil if unknown.
func (b *Book) SpeciesByID(id string) *AnimalSpecies {
	for i := range b.Species {
		if b.Species[i].ID == id {
			return &b.Species[i]
		}
	}
	return nil
}

// Item returns the inventory item with this id, or nil if unknown.
func (b *Book) Item(id string) *InventoryItem {
	for i := range b.Items {
		if b.Items[i].ID == id {
			return &b.Items[i]
		}
	}
	return nil
}

// Asset returns the asset with this id, or nil if unknown.
func (b *Book) Asset(id string) *Asset {
	for i := range b.Assets {
		if b.Assets[i].ID == id {
			return &b.Assets[i]
		}
	}
	return nil
}

// Liability returns the liability with this id, or nil if unknown.
func (b *Book) Liability(id string) *Liability {
	for i := range b.Liabilities {
		if b.Liabilities[i].ID == id {
			return &b.Liabilities[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the book. Entity values hold only immutable
// decimals and strings, so copying the collections is enough.
func (b *Book) Clone() *Book {
	c := *b
	c.NavItems = slices.Clone(b.NavItems)
	c.Categories = slices.Clone(b.Categories)
	c.Accounts = slices.Clone(b.Accounts)
	c.Transactions = slices.Clone(b.Transactions)
	c.Species = slices.Clone(b.Species)
	c.AnimalLogs = slices.Clone(b.AnimalLogs)
	c.Items = slices.Clone(b.Items)
	c.Movements = slices.Clone(b.Movements)
	c.Assets = slices.Clone(b.Assets)
	c.Liabilities = slices.Clone(b.Liabilities)
	return &c
}

// Equal reports whether two books carry the same state, collection order
// included.
func (b *Book) Equal(o *Book) bool {
	if b.Owner != o.Owner || b.Revision != o.Revision || b.CompactLayout != o.CompactLayout {
		return false
	}
	return slices.Equal(b.NavItems, o.NavItems) &&
		slices.EqualFunc(b.Categories, o.Categories, Category.Equal) &&
		slices.EqualFunc(b.Accounts, o.Accounts, Account.Equal) &&
		slices.EqualFunc(b.Transactions, o.Transactions, Transaction.Equal) &&
		slices.EqualFunc(b.Species, o.Species, AnimalSpecies.Equal) &&
		slices.EqualFunc(b.AnimalLogs, o.AnimalLogs, AnimalLog.Equal) &&
		slices.EqualFunc(b.Items, o.Items, InventoryItem.Equal) &&
		slices.EqualFunc(b.Movements, o.Movements, InventoryMovement.Equal) &&
		slices.EqualFunc(b.Assets, o.Assets, Asset.Equal) &&
		slices.EqualFunc(b.Liabilities, o.Liabilities, Liability.Equal)
}
