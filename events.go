package accounting

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// EventType is a typed string for identifying domain events.
type EventType string

// Event types used for identifying domain events.
const (
	EvtPutCategory       EventType = "put-category"
	EvtDeleteCategory    EventType = "delete-category"
	EvtPutAccount        EventType = "put-account"
	EvtDeleteAccount     EventType = "delete-account"
	EvtPutTransaction    EventType = "put-transaction"
	EvtDeleteTransaction EventType = "delete-transaction"
	EvtPutSpecies        EventType = "put-species"
	EvtDeleteSpecies     EventType = "delete-species"
	EvtPutItem           EventType = "put-item"
	EvtDeleteItem        EventType = "delete-item"
	EvtPutAsset          EventType = "put-asset"
	EvtDeleteAsset       EventType = "delete-asset"
	EvtPutLiability      EventType = "put-liability"
	EvtDeleteLiability   EventType = "delete-liability"
	EvtAnimalLog         EventType = "animal-log"
	EvtStockMove         EventType = "stock-move"
	EvtPayLiability      EventType = "pay-liability"
	EvtSetNav            EventType = "set-nav"
	EvtSetLayout         EventType = "set-layout"
)

// Event defines the common interface for all domain events a book can
// absorb. Validate checks the event against the current book state and
// applies quick fixes (defaulting a zero date to today, minting a missing id,
// capping a payment to the open balance); it returns the fixed event or an
// error.
type Event interface {
	What() EventType // What returns the event type (e.g. "put-transaction").
	When() Date      // When returns the date the event applies on.
	Equal(Event) bool
	Validate(b *Book) (Event, error)
}

// newID mints a globally unique random identifier for a new entity.
func newID() string { return uuid.NewString() }

type baseEvt struct {
	Event EventType `json:"event"`          // Event specifies the type of domain event.
	Date  Date      `json:"date"`           // Date is the day the event applies on.
	Memo  string    `json:"memo,omitempty"` // Memo provides an optional note for the event.
}

// What returns the event type, which identifies the concrete event.
func (t baseEvt) What() EventType {
	return t.Event
}

// When returns the date of the event.
func (t baseEvt) When() Date {
	return t.Date
}

// MarshalJSON implements the json.Marshaler interface for baseEvt.
func (t baseEvt) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("event", t.Event)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// Validate checks the base event fields. It sets the date to today if it's
// zero. It's meant to be embedded in other event validation methods.
func (t *baseEvt) Validate() {
	if t.Date == (Date{}) {
		t.Date = Today()
	}
}

// PutCategory creates a category or replaces the one with the same id.
type PutCategory struct {
	baseEvt
	Category Category `json:"category"`
}

// NewPutCategory creates a new PutCategory event.
func NewPutCategory(day Date, memo string, c Category) PutCategory {
	return PutCategory{baseEvt: baseEvt{Event: EvtPutCategory, Date: day, Memo: memo}, Category: c}
}

// MarshalJSON implements the json.Marshaler interface for PutCategory.
func (t PutCategory) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("category", t.Category)
	return w.MarshalJSON()
}

func (t PutCategory) Equal(other Event) bool {
	o, ok := other.(PutCategory)
	return ok && t.baseEvt == o.baseEvt && t.Category.Equal(o.Category)
}

// Validate checks the PutCategory fields. It mints an id for a new category.
func (t PutCategory) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if t.Category.Name == "" {
		return t, errors.New("category name is missing")
	}
	if _, err := ParseEntryType(string(t.Category.Type)); err != nil {
		return t, err
	}
	if t.Category.ID == "" {
		t.Category.ID = newID()
	}
	return t, nil
}

// DeleteCategory removes a category by id. Transactions keep their reference
// and fall back to the "Other" bucket in reports.
type DeleteCategory struct {
	baseEvt
	Category string `json:"category"`
}

// NewDeleteCategory creates a new DeleteCategory event.
func NewDeleteCategory(day Date, memo, id string) DeleteCategory {
	return DeleteCategory{baseEvt: baseEvt{Event: EvtDeleteCategory, Date: day, Memo: memo}, Category: id}
}

// MarshalJSON implements the json.Marshaler interface for DeleteCategory.
func (t DeleteCategory) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("category", t.Category)
	return w.MarshalJSON()
}

func (t DeleteCategory) Equal(other Event) bool {
	o, ok := other.(DeleteCategory)
	return ok && t == o
}

// Validate checks that the category exists.
func (t DeleteCategory) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if b.Category(t.Category) == nil {
		return t, fmt.Errorf("category %q: %w", t.Category, ErrNotFound)
	}
	return t, nil
}

// PutAccount creates an account or replaces the one with the same id.
type PutAccount struct {
	baseEvt
	Account Account `json:"account"`
}

// NewPutAccount creates a new PutAccount event.
func NewPutAccount(day Date, memo string, a Account) PutAccount {
	return PutAccount{baseEvt: baseEvt{Event: EvtPutAccount, Date: day, Memo: memo}, Account: a}
}

// MarshalJSON implements the json.Marshaler interface for PutAccount.
func (t PutAccount) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("account", t.Account)
	return w.MarshalJSON()
}

func (t PutAccount) Equal(other Event) bool {
	o, ok := other.(PutAccount)
	return ok && t.baseEvt == o.baseEvt && t.Account.Equal(o.Account)
}

// Validate checks the PutAccount fields. It mints an id for a new account and
// rounds the initial balance to the currency's minor unit.
func (t PutAccount) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if t.Account.Name == "" {
		return t, errors.New("account name is missing")
	}
	if _, err := ParseAccountType(string(t.Account.Type)); err != nil {
		return t, err
	}
	if t.Account.ID == "" {
		t.Account.ID = newID()
	}
	t.Account.InitialBalance = t.Account.InitialBalance.roundCurrency()
	return t, nil
}

// DeleteAccount removes an account by id. Transactions keep their reference
// and show as "Unknown Account" in reports.
type DeleteAccount struct {
	baseEvt
	Account string `json:"account"`
}

// NewDeleteAccount creates a new DeleteAccount event.
func NewDeleteAccount(day Date, memo, id string) DeleteAccount {
	return DeleteAccount{baseEvt: baseEvt{Event: EvtDeleteAccount, Date: day, Memo: memo}, Account: id}
}

// MarshalJSON implements the json.Marshaler interface for DeleteAccount.
func (t DeleteAccount) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("account", t.Account)
	return w.MarshalJSON()
}

func (t DeleteAccount) Equal(other Event) bool {
	o, ok := other.(DeleteAccount)
	return ok && t == o
}

// Validate checks that the account exists.
func (t DeleteAccount) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if b.Account(t.Account) == nil {
		return t, fmt.Errorf("account %q: %w", t.Account, ErrNotFound)
	}
	return t, nil
}

// PutTransaction creates a ledger entry or replaces the one with the same id.
type PutTransaction struct {
	baseEvt
	Transaction Transaction `json:"transaction"`
}

// NewPutTransaction creates a new PutTransaction event.
func NewPutTransaction(day Date, memo string, tx Transaction) PutTransaction {
	return PutTransaction{baseEvt: baseEvt{Event: EvtPutTransaction, Date: day, Memo: memo}, Transaction: tx}
}

// MarshalJSON implements the json.Marshaler interface for PutTransaction.
func (t PutTransaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("transaction", t.Transaction)
	return w.MarshalJSON()
}

func (t PutTransaction) Equal(other Event) bool {
	o, ok := other.(PutTransaction)
	return ok && t.baseEvt == o.baseEvt && t.Transaction.Equal(o.Transaction)
}

// Validate checks the PutTransaction fields. The referenced category must
// exist and carry the same entry type as the transaction; the referenced
// account must exist. A zero transaction date takes the event date, the
// amount is rounded to the currency's minor unit, and a missing id is minted.
func (t PutTransaction) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if t.Transaction.Date.IsZero() {
		t.Transaction.Date = t.Date
	} else {
		t.Date = t.Transaction.Date
	}
	if _, err := ParseEntryType(string(t.Transaction.Type)); err != nil {
		return t, err
	}
	if t.Transaction.Amount.IsNegative() {
		return t, fmt.Errorf("transaction amount must not be negative, got %s", t.Transaction.Amount)
	}
	c := b.Category(t.Transaction.Category)
	if c == nil {
		return t, fmt.Errorf("category %q: %w", t.Transaction.Category, ErrNotFound)
	}
	if c.Type != t.Transaction.Type {
		return t, fmt.Errorf("transaction type %s does not match category %q type %s", t.Transaction.Type, c.Name, c.Type)
	}
	if b.Account(t.Transaction.Account) == nil {
		return t, fmt.Errorf("account %q: %w", t.Transaction.Account, ErrNotFound)
	}
	if t.Transaction.ID == "" {
		t.Transaction.ID = newID()
	}
	t.Transaction.Amount = t.Transaction.Amount.roundCurrency()
	return t, nil
}

// DeleteTransaction removes a ledger entry by id.
type DeleteTransaction struct {
	baseEvt
	Transaction string `json:"transaction"`
}

// NewDeleteTransaction creates a new DeleteTransaction event.
func NewDeleteTransaction(day Date, memo, id string) DeleteTransaction {
	return DeleteTransaction{baseEvt: baseEvt{Event: EvtDeleteTransaction, Date: day, Memo: memo}, Transaction: id}
}

// MarshalJSON implements the json.Marshaler interface for DeleteTransaction.
func (t DeleteTransaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("transaction", t.Transaction)
	return w.MarshalJSON()
}

func (t DeleteTransaction) Equal(other Event) bool {
	o, ok := other.(DeleteTransaction)
	return ok && t == o
}

// Validate checks that the transaction exists.
func (t DeleteTransaction) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if b.Transaction(t.Transaction) == nil {
		return t, fmt.Errorf("transaction %q: %w", t.Transaction, ErrNotFound)
	}
	return t, nil
}

// PutSpecies creates a herd line or replaces the one with the same id. This
// is the explicit edit path that may set the count directly; day-to-day herd
// changes go through animal logs instead.
type PutSpecies struct {
	baseEvt
	Species AnimalSpecies `json:"species"`
}

// NewPutSpecies creates a new PutSpecies event.
func NewPutSpecies(day Date, memo string, s AnimalSpecies) PutSpecies {
	return PutSpecies{baseEvt: baseEvt{Event: EvtPutSpecies, Date: day, Memo: memo}, Species: s}
}

// MarshalJSON implements the json.Marshaler interface for PutSpecies.
func (t PutSpecies) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("species", t.Species)
	return w.MarshalJSON()
}

func (t PutSpecies) Equal(other Event) bool {
	o, ok := other.(PutSpecies)
	return ok && t.baseEvt == o.baseEvt && t.Species.Equal(o.Species)
}

// Validate checks the PutSpecies fields. A negative count is clamped to
// zero and a missing id is minted.
func (t PutSpecies) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if t.Species.Name == "" {
		return t, errors.New("species name is missing")
	}
	if t.Species.EstimatedValue.IsNegative() {
		return t, fmt.Errorf("species estimated value must not be negative, got %s", t.Species.EstimatedValue)
	}
	if t.Species.Count.IsNegative() {
		t.Species.Count = Q(0)
	}
	if t.Species.ID == "" {
		t.Species.ID = newID()
	}
	return t, nil
}

// DeleteSpecies removes a herd line by id. Its logs remain and show as
// "Archived Species" in reports.
type DeleteSpecies struct {
	baseEvt
	Species string `json:"species"`
}

// NewDeleteSpecies creates a new DeleteSpecies event.
func NewDeleteSpecies(day Date, memo, id string) DeleteSpecies {
	return DeleteSpecies{baseEvt: baseEvt{Event: EvtDeleteSpecies, Date: day, Memo: memo}, Species: id}
}

// MarshalJSON implements the json.Marshaler interface for DeleteSpecies.
func (t DeleteSpecies) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("species", t.Species)
	return w.MarshalJSON()
}

func (t DeleteSpecies) Equal(other Event) bool {
	o, ok := other.(DeleteSpecies)
	return ok && t == o
}

// Validate checks that the species exists.
func (t DeleteSpecies) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if b.SpeciesByID(t.Species) == nil {
		return t, fmt.Errorf("species %q: %w", t.Species, ErrNotFound)
	}
	return t, nil
}

// PutItem creates a stock line or replaces the one with the same id. This is
// the explicit edit path that may set the quantity directly; day-to-day stock
// changes go through movements instead.
type PutItem struct {
	baseEvt
	Item InventoryItem `json:"item"`
}

// NewPutItem creates a new PutItem event.
func NewPutItem(day Date, memo string, i InventoryItem) PutItem {
	return PutItem{baseEvt: baseEvt{Event: EvtPutItem, Date: day, Memo: memo}, Item: i}
}

// MarshalJSON implements the json.Marshaler interface for PutItem.
func (t PutItem) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("item", t.Item)
	return w.MarshalJSON()
}

func (t PutItem) Equal(other Event) bool {
	o, ok := other.(PutItem)
	return ok && t.baseEvt == o.baseEvt && t.Item.Equal(o.Item)
}

// Validate checks the PutItem fields. A negative quantity is clamped to
// zero, a missing asset term defaults to SHORT_TERM, and a missing id is
// minted.
func (t PutItem) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if t.Item.Name == "" {
		return t, errors.New("item name is missing")
	}
	if t.Item.UnitCost.IsNegative() {
		return t, fmt.Errorf("item unit cost must not be negative, got %s", t.Item.UnitCost)
	}
	if t.Item.AssetTerm == "" {
		t.Item.AssetTerm = ShortTerm
	} else if _, err := ParseAssetTerm(string(t.Item.AssetTerm)); err != nil {
		return t, err
	}
	if t.Item.Quantity.IsNegative() {
		t.Item.Quantity = Q(0)
	}
	if t.Item.ID == "" {
		t.Item.ID = newID()
	}
	return t, nil
}

// DeleteItem removes a stock line by id. Its movements remain.
type DeleteItem struct {
	baseEvt
	Item string `json:"item"`
}

// NewDeleteItem creates a new DeleteItem event.
func NewDeleteItem(day Date, memo, id string) DeleteItem {
	return DeleteItem{baseEvt: baseEvt{Event: EvtDeleteItem, Date: day, Memo: memo}, Item: id}
}

// MarshalJSON implements the json.Marshaler interface for DeleteItem.
func (t DeleteItem) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("item", t.Item)
	return w.MarshalJSON()
}

func (t DeleteItem) Equal(other Event) bool {
	o, ok := other.(DeleteItem)
	return ok && t == o
}

// Validate checks that the item exists.
func (t DeleteItem) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if b.Item(t.Item) == nil {
		return t, fmt.Errorf("item %q: %w", t.Item, ErrNotFound)
	}
	return t, nil
}

// PutAsset creates a fixed asset or replaces the one with the same id.
type PutAsset struct {
	baseEvt
	Asset Asset `json:"asset"`
}

// NewPutAsset creates a new PutAsset event.
func NewPutAsset(day Date, memo string, a Asset) PutAsset {
	return PutAsset{baseEvt: baseEvt{Event: EvtPutAsset, Date: day, Memo: memo}, Asset: a}
}

// MarshalJSON implements the json.Marshaler interface for PutAsset.
func (t PutAsset) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("asset", t.Asset)
	return w.MarshalJSON()
}

func (t PutAsset) Equal(other Event) bool {
	o, ok := other.(PutAsset)
	return ok && t.baseEvt == o.baseEvt && t.Asset.Equal(o.Asset)
}

// Validate checks the PutAsset fields. A zero purchase date takes the event
// date, money fields are rounded, and a missing id is minted.
func (t PutAsset) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if t.Asset.Name == "" {
		return t, errors.New("asset name is missing")
	}
	if t.Asset.PurchasePrice.IsNegative() || t.Asset.CurrentValue.IsNegative() {
		return t, errors.New("asset values must not be negative")
	}
	if t.Asset.PurchaseDate.IsZero() {
		t.Asset.PurchaseDate = t.Date
	}
	if t.Asset.ID == "" {
		t.Asset.ID = newID()
	}
	t.Asset.PurchasePrice = t.Asset.PurchasePrice.roundCurrency()
	t.Asset.CurrentValue = t.Asset.CurrentValue.roundCurrency()
	return t, nil
}

// DeleteAsset removes a fixed asset by id.
type DeleteAsset struct {
	baseEvt
	Asset string `json:"asset"`
}

// NewDeleteAsset creates a new DeleteAsset event.
func NewDeleteAsset(day Date, memo, id string) DeleteAsset {
	return DeleteAsset{baseEvt: baseEvt{Event: EvtDeleteAsset, Date: day, Memo: memo}, Asset: id}
}

// MarshalJSON implements the json.Marshaler interface for DeleteAsset.
func (t DeleteAsset) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("asset", t.Asset)
	return w.MarshalJSON()
}

func (t DeleteAsset) Equal(other Event) bool {
	o, ok := other.(DeleteAsset)
	return ok && t == o
}

// Validate checks that the asset exists.
func (t DeleteAsset) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if b.Asset(t.Asset) == nil {
		return t, fmt.Errorf("asset %q: %w", t.Asset, ErrNotFound)
	}
	return t, nil
}

// PutLiability creates a debt line or replaces the one with the same id. This
// is the manual edit path that may set the balance directly; payments go
// through RecordPayment instead.
type PutLiability struct {
	baseEvt
	Liability Liability `json:"liability"`
}

// NewPutLiability creates a new PutLiability event.
func NewPutLiability(day Date, memo string, l Liability) PutLiability {
	return PutLiability{baseEvt: baseEvt{Event: EvtPutLiability, Date: day, Memo: memo}, Liability: l}
}

// MarshalJSON implements the json.Marshaler interface for PutLiability.
func (t PutLiability) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("liability", t.Liability)
	return w.MarshalJSON()
}

func (t PutLiability) Equal(other Event) bool {
	o, ok := other.(PutLiability)
	return ok && t.baseEvt == o.baseEvt && t.Liability.Equal(o.Liability)
}

// Validate checks the PutLiability fields. A negative balance is clamped to
// zero, money fields are rounded, and a missing id is minted.
func (t PutLiability) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if t.Liability.Name == "" {
		return t, errors.New("liability name is missing")
	}
	if t.Liability.OriginalAmount.IsNegative() {
		return t, fmt.Errorf("liability original amount must not be negative, got %s", t.Liability.OriginalAmount)
	}
	if t.Liability.InstallmentAmount.IsNegative() {
		return t, fmt.Errorf("liability installment must not be negative, got %s", t.Liability.InstallmentAmount)
	}
	if t.Liability.PaymentFrequency != "" {
		if _, err := ParsePaymentFrequency(string(t.Liability.PaymentFrequency)); err != nil {
			return t, err
		}
	}
	if t.Liability.CurrentBalance.IsNegative() {
		t.Liability.CurrentBalance = M(0, t.Liability.CurrentBalance.Currency())
	}
	if t.Liability.ID == "" {
		t.Liability.ID = newID()
	}
	t.Liability.OriginalAmount = t.Liability.OriginalAmount.roundCurrency()
	t.Liability.CurrentBalance = t.Liability.CurrentBalance.roundCurrency()
	t.Liability.InstallmentAmount = t.Liability.InstallmentAmount.roundCurrency()
	return t, nil
}

// DeleteLiability removes a debt line by id.
type DeleteLiability struct {
	baseEvt
	Liability string `json:"liability"`
}

// NewDeleteLiability creates a new DeleteLiability event.
func NewDeleteLiability(day Date, memo, id string) DeleteLiability {
	return DeleteLiability{baseEvt: baseEvt{Event: EvtDeleteLiability, Date: day, Memo: memo}, Liability: id}
}

// MarshalJSON implements the json.Marshaler interface for DeleteLiability.
func (t DeleteLiability) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("liability", t.Liability)
	return w.MarshalJSON()
}

func (t DeleteLiability) Equal(other Event) bool {
	o, ok := other.(DeleteLiability)
	return ok && t == o
}

// Validate checks that the liability exists.
func (t DeleteLiability) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if b.Liability(t.Liability) == nil {
		return t, fmt.Errorf("liability %q: %w", t.Liability, ErrNotFound)
	}
	return t, nil
}
