package accounting

import (
	"errors"
	"fmt"
)

// RecordAnimalLog appends a herd movement (bought, birth, sold or death) and
// adjusts the species head count accordingly.
type RecordAnimalLog struct {
	baseEvt
	Log AnimalLog `json:"log"`
}

// NewRecordAnimalLog creates a new RecordAnimalLog event.
func NewRecordAnimalLog(day Date, memo string, l AnimalLog) RecordAnimalLog {
	return RecordAnimalLog{baseEvt: baseEvt{Event: EvtAnimalLog, Date: day, Memo: memo}, Log: l}
}

// MarshalJSON implements the json.Marshaler interface for RecordAnimalLog.
func (t RecordAnimalLog) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("log", t.Log)
	return w.MarshalJSON()
}

func (t RecordAnimalLog) Equal(other Event) bool {
	o, ok := other.(RecordAnimalLog)
	return ok && t.baseEvt == o.baseEvt && t.Log.Equal(o.Log)
}

// Validate checks the RecordAnimalLog fields. A zero log date takes the event
// date, a zero per-head value takes the species' current estimate, and a
// missing id is minted. The species reference is not required to resolve:
// logs survive the deletion of their species and show up under "Archived
// Species" in reports, so a log against an unknown species is legal and
// simply leaves no count to adjust.
func (t RecordAnimalLog) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if _, err := ParseLogType(string(t.Log.Type)); err != nil {
		return t, err
	}
	if !t.Log.Quantity.IsPositive() {
		return t, fmt.Errorf("animal log quantity must be positive, got %s", t.Log.Quantity)
	}
	if t.Log.ValueAtTime.IsNegative() {
		return t, fmt.Errorf("animal log value must not be negative, got %s", t.Log.ValueAtTime)
	}
	if t.Log.Date.IsZero() {
		t.Log.Date = t.Date
	}
	if t.Log.ValueAtTime.IsZero() {
		if s := b.SpeciesByID(t.Log.Species); s != nil {
			t.Log.ValueAtTime = s.EstimatedValue
		}
	}
	if t.Log.ID == "" {
		t.Log.ID = newID()
	}
	t.Log.ValueAtTime = t.Log.ValueAtTime.roundCurrency()
	return t, nil
}

// RecordMovement appends a stock movement and adjusts the item quantity
// accordingly.
type RecordMovement struct {
	baseEvt
	Movement InventoryMovement `json:"movement"`
}

// NewRecordMovement creates a new RecordMovement event.
func NewRecordMovement(day Date, memo string, m InventoryMovement) RecordMovement {
	return RecordMovement{baseEvt: baseEvt{Event: EvtStockMove, Date: day, Memo: memo}, Movement: m}
}

// MarshalJSON implements the json.Marshaler interface for RecordMovement.
func (t RecordMovement) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("movement", t.Movement)
	return w.MarshalJSON()
}

func (t RecordMovement) Equal(other Event) bool {
	o, ok := other.(RecordMovement)
	return ok && t.baseEvt == o.baseEvt && t.Movement.Equal(o.Movement)
}

// Validate checks the RecordMovement fields. A zero movement date takes the
// event date, a zero unit cost takes the item's current cost, and a missing
// id is minted. Like animal logs, movements outlive their item, so the item
// reference is not required to resolve.
func (t RecordMovement) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	if _, err := ParseMovementType(string(t.Movement.Type)); err != nil {
		return t, err
	}
	if !t.Movement.Quantity.IsPositive() {
		return t, fmt.Errorf("stock movement quantity must be positive, got %s", t.Movement.Quantity)
	}
	if t.Movement.UnitCostAtTime.IsNegative() {
		return t, fmt.Errorf("stock movement unit cost must not be negative, got %s", t.Movement.UnitCostAtTime)
	}
	if t.Movement.Date.IsZero() {
		t.Movement.Date = t.Date
	}
	if t.Movement.UnitCostAtTime.IsZero() {
		if i := b.Item(t.Movement.Item); i != nil {
			t.Movement.UnitCostAtTime = i.UnitCost
		}
	}
	if t.Movement.ID == "" {
		t.Movement.ID = newID()
	}
	t.Movement.UnitCostAtTime = t.Movement.UnitCostAtTime.roundCurrency()
	return t, nil
}

// RecordPayment pays an installment on a liability. It decreases the open
// balance and books a matching expense transaction in one step, so the cash
// side and the debt side can never drift apart.
type RecordPayment struct {
	baseEvt
	Liability   string `json:"liability"`
	Amount      Money  `json:"amount"`
	Category    string `json:"categoryId"`
	Account     string `json:"accountId"`
	Transaction string `json:"transactionId"` // id of the expense entry this payment books
}

// NewRecordPayment creates a new RecordPayment event.
func NewRecordPayment(day Date, memo, liability string, amount Money, category, account string) RecordPayment {
	return RecordPayment{
		baseEvt:   baseEvt{Event: EvtPayLiability, Date: day, Memo: memo},
		Liability: liability,
		Amount:    amount,
		Category:  category,
		Account:   account,
	}
}

// MarshalJSON implements the json.Marshaler interface for RecordPayment.
func (t RecordPayment) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("liability", t.Liability)
	w.Append("amount", t.Amount)
	w.Append("categoryId", t.Category)
	w.Append("accountId", t.Account)
	w.Append("transactionId", t.Transaction)
	return w.MarshalJSON()
}

func (t RecordPayment) Equal(other Event) bool {
	o, ok := other.(RecordPayment)
	return ok && t.baseEvt == o.baseEvt && t.Liability == o.Liability &&
		t.Amount.Equal(o.Amount) && t.Category == o.Category && t.Account == o.Account &&
		t.Transaction == o.Transaction
}

// Validate checks the RecordPayment fields. The liability, account and the
// expense category must all exist; an amount above the open balance is capped
// to it so a final installment can be paid without computing the exact
// remainder first. The id of the expense entry the payment will book is
// minted here, not at apply time, so a validated payment has one fixed
// effect.
func (t RecordPayment) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	l := b.Liability(t.Liability)
	if l == nil {
		return t, fmt.Errorf("liability %q: %w", t.Liability, ErrNotFound)
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("payment amount must be positive, got %s", t.Amount)
	}
	c := b.Category(t.Category)
	if c == nil {
		return t, fmt.Errorf("category %q: %w", t.Category, ErrNotFound)
	}
	if c.Type != Expense {
		return t, fmt.Errorf("category %q is %s, a payment books against an expense category", c.Name, c.Type)
	}
	if b.Account(t.Account) == nil {
		return t, fmt.Errorf("account %q: %w", t.Account, ErrNotFound)
	}
	if t.Amount.GreaterThan(l.CurrentBalance) {
		t.Amount = l.CurrentBalance
	}
	if t.Transaction == "" {
		t.Transaction = newID()
	}
	t.Amount = t.Amount.roundCurrency()
	return t, nil
}

// SetNavItems replaces the dashboard navigation layout. Layout is part of the
// synced book, so changing it is an event like any other.
type SetNavItems struct {
	baseEvt
	Items []NavItem `json:"items"`
}

// NewSetNavItems creates a new SetNavItems event.
func NewSetNavItems(day Date, memo string, items []NavItem) SetNavItems {
	return SetNavItems{baseEvt: baseEvt{Event: EvtSetNav, Date: day, Memo: memo}, Items: items}
}

// MarshalJSON implements the json.Marshaler interface for SetNavItems.
func (t SetNavItems) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("items", t.Items)
	return w.MarshalJSON()
}

func (t SetNavItems) Equal(other Event) bool {
	o, ok := other.(SetNavItems)
	if !ok || t.baseEvt != o.baseEvt || len(t.Items) != len(o.Items) {
		return false
	}
	for i := range t.Items {
		if t.Items[i] != o.Items[i] {
			return false
		}
	}
	return true
}

// Validate rejects duplicate nav entries, the one way a layout list can be
// broken.
func (t SetNavItems) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	seen := make(map[string]bool, len(t.Items))
	for _, it := range t.Items {
		if it.ID == "" {
			return t, errors.New("nav item id is missing")
		}
		if seen[it.ID] {
			return t, fmt.Errorf("nav item %q appears twice", it.ID)
		}
		seen[it.ID] = true
	}
	return t, nil
}

// SetCompactLayout toggles the dense dashboard rendering.
type SetCompactLayout struct {
	baseEvt
	Compact bool `json:"compact"`
}

// NewSetCompactLayout creates a new SetCompactLayout event.
func NewSetCompactLayout(day Date, memo string, compact bool) SetCompactLayout {
	return SetCompactLayout{baseEvt: baseEvt{Event: EvtSetLayout, Date: day, Memo: memo}, Compact: compact}
}

// MarshalJSON implements the json.Marshaler interface for SetCompactLayout.
func (t SetCompactLayout) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvt)
	w.Append("compact", t.Compact)
	return w.MarshalJSON()
}

func (t SetCompactLayout) Equal(other Event) bool {
	o, ok := other.(SetCompactLayout)
	return ok && t == o
}

// Validate has nothing to check beyond the base fields.
func (t SetCompactLayout) Validate(b *Book) (Event, error) {
	t.baseEvt.Validate()
	return t, nil
}
