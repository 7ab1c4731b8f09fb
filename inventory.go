package accounting

import (
	"fmt"
	"strings"
)

// MovementType identifies the direction of a stock movement.
type MovementType string

const (
	StockIn  MovementType = "IN"
	StockOut MovementType = "OUT"
)

// ParseMovementType parses a string into a MovementType.
func ParseMovementType(s string) (MovementType, error) {
	switch t := MovementType(strings.ToUpper(strings.TrimSpace(s))); t {
	case StockIn, StockOut:
		return t, nil
	default:
		return "", fmt.Errorf("unknown movement type %q, want IN or OUT", s)
	}
}

// AssetTerm classifies inventory as consumed within the season or kept
// longer.
type AssetTerm string

const (
	ShortTerm AssetTerm = "SHORT_TERM"
	LongTerm  AssetTerm = "LONG_TERM"
)

// ParseAssetTerm parses a string into an AssetTerm.
func ParseAssetTerm(s string) (AssetTerm, error) {
	switch t := AssetTerm(strings.ToUpper(strings.TrimSpace(s))); t {
	case ShortTerm, LongTerm:
		return t, nil
	default:
		return "", fmt.Errorf("unknown asset term %q, want SHORT_TERM or LONG_TERM", s)
	}
}

// InventoryItem is one stock line (feed, seed, fuel, ...). Quantity is a
// running total maintained by stock movements; it is only set directly
// through an explicit item edit.
type InventoryItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku,omitempty"`
	Description string    `json:"description,omitempty"`
	Quantity    Quantity  `json:"quantity"`
	UnitCost    Money     `json:"unitCost"`
	AssetTerm   AssetTerm `json:"assetTerm"`
}

// MarshalJSON implements the json.Marshaler interface for InventoryItem.
func (i InventoryItem) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", i.ID)
	w.Append("name", i.Name)
	w.Optional("sku", i.SKU)
	w.Optional("description", i.Description)
	w.Append("quantity", i.Quantity)
	w.Append("unitCost", i.UnitCost.exact())
	w.Append("assetTerm", i.AssetTerm)
	return w.MarshalJSON()
}

func (i InventoryItem) Equal(o InventoryItem) bool {
	return i.ID == o.ID && i.Name == o.Name && i.SKU == o.SKU && i.Description == o.Description &&
		i.Quantity.Equal(o.Quantity) && i.UnitCost.Equal(o.UnitCost) && i.AssetTerm == o.AssetTerm
}

// InventoryMovement is one append-only stock event. IN raises the item
// quantity, OUT lowers it, never below zero.
type InventoryMovement struct {
	ID             string       `json:"id"`
	Item           string       `json:"itemId"`
	Type           MovementType `json:"type"`
	Quantity       Quantity     `json:"quantity"`
	Note           string       `json:"note,omitempty"`
	Date           Date         `json:"date"`
	UnitCostAtTime Money        `json:"unitCostAtTime"` // per unit cost when the movement was recorded
}

// MarshalJSON implements the json.Marshaler interface for InventoryMovement.
func (m InventoryMovement) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", m.ID)
	w.Append("itemId", m.Item)
	w.Append("type", m.Type)
	w.Append("quantity", m.Quantity)
	w.Optional("note", m.Note)
	w.Append("date", m.Date)
	w.Append("unitCostAtTime", m.UnitCostAtTime.exact())
	return w.MarshalJSON()
}

func (m InventoryMovement) Equal(o InventoryMovement) bool {
	return m.ID == o.ID && m.Item == o.Item && m.Type == o.Type && m.Quantity.Equal(o.Quantity) &&
		m.Note == o.Note && m.Date == o.Date && m.UnitCostAtTime.Equal(o.UnitCostAtTime)
}
