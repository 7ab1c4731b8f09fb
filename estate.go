package accounting

import (
	"fmt"
	"strings"
)

// PaymentFrequency is how often a liability installment falls due.
type PaymentFrequency string

const (
	PayWeekly    PaymentFrequency = "WEEKLY"
	PayMonthly   PaymentFrequency = "MONTHLY"
	PayQuarterly PaymentFrequency = "QUARTERLY"
	PayYearly    PaymentFrequency = "YEARLY"
)

// ParsePaymentFrequency parses a string into a PaymentFrequency.
func ParsePaymentFrequency(s string) (PaymentFrequency, error) {
	switch t := PaymentFrequency(strings.ToUpper(strings.TrimSpace(s))); t {
	case PayWeekly, PayMonthly, PayQuarterly, PayYearly:
		return t, nil
	default:
		return "", fmt.Errorf("unknown payment frequency %q, want WEEKLY, MONTHLY, QUARTERLY or YEARLY", s)
	}
}

// DueStatus classifies how pressing a liability's due date is.
type DueStatus string

const (
	Overdue  DueStatus = "OVERDUE"
	DueToday DueStatus = "DUE_TODAY"
	DueSoon  DueStatus = "DUE_SOON" // within the next 7 days
	Normal   DueStatus = "NORMAL"
)

// Asset is an independently tracked fixed asset (tractor, barn, well).
// Its value line is separate from livestock and inventory valuations.
type Asset struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category,omitempty"` // free text, e.g. "Machinery"
	PurchaseDate  Date   `json:"purchaseDate"`
	PurchasePrice Money  `json:"purchasePrice"`
	CurrentValue  Money  `json:"currentValue"`
	Description   string `json:"description,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface for Asset.
func (a Asset) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", a.ID)
	w.Append("name", a.Name)
	w.Optional("category", a.Category)
	w.Append("purchaseDate", a.PurchaseDate)
	w.Append("purchasePrice", a.PurchasePrice)
	w.Append("currentValue", a.CurrentValue)
	w.Optional("description", a.Description)
	return w.MarshalJSON()
}

func (a Asset) Equal(o Asset) bool {
	return a.ID == o.ID && a.Name == o.Name && a.Category == o.Category && a.PurchaseDate == o.PurchaseDate &&
		a.PurchasePrice.Equal(o.PurchasePrice) && a.CurrentValue.Equal(o.CurrentValue) && a.Description == o.Description
}

// Liability is a debt the farm owes. CurrentBalance only moves down through
// recorded payments, and never below zero; a manual edit can set it freely.
type Liability struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Category          string           `json:"category,omitempty"` // free text, e.g. "Equipment Loan"
	OriginalAmount    Money            `json:"originalAmount"`
	CurrentBalance    Money            `json:"currentBalance"`
	InterestRate      Percent          `json:"interestRate,omitempty"`
	DueDate           Date             `json:"dueDate"`
	InstallmentAmount Money            `json:"installmentAmount"`
	PaymentFrequency  PaymentFrequency `json:"paymentFrequency,omitempty"`
	Description       string           `json:"description,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface for Liability.
func (l Liability) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", l.ID)
	w.Append("name", l.Name)
	w.Optional("category", l.Category)
	w.Append("originalAmount", l.OriginalAmount)
	w.Append("currentBalance", l.CurrentBalance)
	w.Optional("interestRate", l.InterestRate)
	w.Optional("dueDate", l.DueDate)
	w.Optional("installmentAmount", l.InstallmentAmount)
	w.Optional("paymentFrequency", l.PaymentFrequency)
	w.Optional("description", l.Description)
	return w.MarshalJSON()
}

func (l Liability) Equal(o Liability) bool {
	return l.ID == o.ID && l.Name == o.Name && l.Category == o.Category &&
		l.OriginalAmount.Equal(o.OriginalAmount) && l.CurrentBalance.Equal(o.CurrentBalance) &&
		l.InterestRate.Equal(o.InterestRate) && l.DueDate == o.DueDate &&
		l.InstallmentAmount.Equal(o.InstallmentAmount) && l.PaymentFrequency == o.PaymentFrequency &&
		l.Description == o.Description
}
