package accounting

import "testing"

// USD is a helper for test to create dollar money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

const testOwner = "jane@farm.example"

// testBook builds a small but complete set of farm books: two expense
// categories and one income category, two accounts, a herd, a stocked item,
// a fixed asset and an open loan. Tests mutate their own copy freely.
func testBook() *Book {
	return &Book{
		Owner: testOwner,
		Categories: []Category{
			{ID: "cat-feed", Name: "Feed", Type: Expense},
			{ID: "cat-vet", Name: "Veterinary", Type: Expense},
			{ID: "cat-sales", Name: "Livestock Sales", Type: Income},
		},
		Accounts: []Account{
			{ID: "acc-cash", Name: "Cash Box", Type: Cash, InitialBalance: USD(100)},
			{ID: "acc-bank", Name: "Co-op Bank", Type: Checking, InitialBalance: USD(1000)},
		},
		Species: []AnimalSpecies{
			{ID: "sp-cows", Name: "Cows", Count: Q(10), EstimatedValue: USD(200)},
			{ID: "sp-hens", Name: "Hens", Count: Q(50), EstimatedValue: USD(5)},
		},
		Items: []InventoryItem{
			{ID: "it-meal", Name: "Dairy Meal", Quantity: Q(40), UnitCost: USD(2), AssetTerm: ShortTerm},
		},
		Assets: []Asset{
			{ID: "as-well", Name: "Borehole", PurchaseDate: MustParse("2024-03-01"), PurchasePrice: USD(2500), CurrentValue: USD(2500)},
		},
		Liabilities: []Liability{
			{ID: "li-loan", Name: "Tractor Loan", OriginalAmount: USD(5000), CurrentBalance: USD(1200),
				InstallmentAmount: USD(300), PaymentFrequency: PayMonthly, DueDate: MustParse("2025-06-15")},
		},
	}
}

// mustApply folds events into the book, failing the test on the first error.
func mustApply(t *testing.T, b *Book, events ...Event) {
	t.Helper()
	for _, evt := range events {
		if err := b.Apply(evt); err != nil {
			t.Fatalf("Apply(%v) = %v", evt.What(), err)
		}
	}
}
