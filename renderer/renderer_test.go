package renderer

import (
	"strings"
	"testing"

	accounting "github.com/bumlambs-max/Accounting-2.0"
)

// farmBook is a small but fully populated book: cash, sales, feed costs,
// a herd with deaths, stock on hand and one loan coming due.
func farmBook() *accounting.Book {
	return &accounting.Book{
		Owner: "jane@farm.example",
		Categories: []accounting.Category{
			{ID: "cat-feed", Name: "Feed", Type: accounting.Expense},
			{ID: "cat-sales", Name: "Livestock Sales", Type: accounting.Income},
		},
		Accounts: []accounting.Account{
			{ID: "acc-cash", Name: "Cash Box", Type: accounting.Cash, InitialBalance: accounting.M(100, "USD")},
		},
		Transactions: []accounting.Transaction{
			{ID: "tx-1", Date: accounting.MustParse("2025-05-05"), Description: "Sold two goats", Amount: accounting.M(500, "USD"), Category: "cat-sales", Account: "acc-cash", Type: accounting.Income},
			{ID: "tx-2", Date: accounting.MustParse("2025-05-06"), Description: "Dairy meal", Amount: accounting.M(200, "USD"), Category: "cat-feed", Account: "acc-cash", Type: accounting.Expense},
		},
		Species: []accounting.AnimalSpecies{
			{ID: "sp-cows", Name: "Cows", Count: accounting.Q(8), EstimatedValue: accounting.M(200, "USD")},
		},
		AnimalLogs: []accounting.AnimalLog{
			{ID: "log-1", Species: "sp-cows", Date: accounting.MustParse("2025-05-07"), Type: accounting.Death, Quantity: accounting.Q(2), ValueAtTime: accounting.M(200, "USD")},
		},
		Items: []accounting.InventoryItem{
			{ID: "it-meal", Name: "Dairy Meal", Quantity: accounting.Q(40), UnitCost: accounting.M(2, "USD"), AssetTerm: accounting.ShortTerm},
		},
		Movements: []accounting.InventoryMovement{
			{ID: "mv-1", Item: "it-meal", Type: accounting.StockOut, Quantity: accounting.Q(10), Date: accounting.MustParse("2025-05-08"), Note: "fed to calves", UnitCostAtTime: accounting.M(2, "USD")},
		},
		Assets: []accounting.Asset{
			{ID: "as-tractor", Name: "Tractor", Category: "Machinery", PurchaseDate: accounting.MustParse("2024-11-01"), PurchasePrice: accounting.M(7500, "USD"), CurrentValue: accounting.M(6800, "USD")},
		},
		Liabilities: []accounting.Liability{
			{ID: "li-loan", Name: "Tractor Loan", OriginalAmount: accounting.M(5000, "USD"), CurrentBalance: accounting.M(1200, "USD"), InstallmentAmount: accounting.M(300, "USD"), DueDate: accounting.MustParse("2025-05-20")},
		},
	}
}

func wantContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q\n%s", want, got)
		}
	}
}

func TestSummaryMarkdown(t *testing.T) {
	got := SummaryMarkdown(farmBook(), accounting.MustParse("2025-05-15"))

	wantContains(t, got,
		"# Farm Summary on 2025-05-15",
		"Books of jane@farm.example",
		"## Cash",
		"Cash Box",
		"Total Cash: $400.00",
		"## Cashflow",
		"60.00%", // gross margin on 500 in, 200 out
		"## Top Expenses",
		"Feed",
		"## Valuations",
		"$1,600.00", // 8 cows at $200
		"Net Worth",
		"## Payments Due",
		"Tractor Loan",
		"$300.00", // the installment, not the whole balance
		"## Mortality",
		"Cows",
	)
}

func TestSummaryMarkdownEmptyBook(t *testing.T) {
	got := SummaryMarkdown(accounting.NewBook("jane@farm.example"), accounting.MustParse("2025-05-15"))

	wantContains(t, got, "# Farm Summary on 2025-05-15", "## Cashflow", "## Valuations")
	for _, absent := range []string{"## Top Expenses", "## Payments Due", "## Mortality"} {
		if strings.Contains(got, absent) {
			t.Errorf("empty book report has section %q\n%s", absent, got)
		}
	}
}

func TestDebtsMarkdown(t *testing.T) {
	got := DebtsMarkdown(farmBook(), accounting.MustParse("2025-05-15"))

	wantContains(t, got,
		"# Debt Schedule on 2025-05-15",
		"Total Outstanding",
		"$1,200.00",
		"## Upcoming Payments",
		"Tractor Loan",
		"2025-05-20",
		"DUE_SOON", // five days out
		"$300.00",  // installment, not the whole balance
	)
}

func TestDebtsMarkdownNoDebts(t *testing.T) {
	got := DebtsMarkdown(accounting.NewBook(""), accounting.MustParse("2025-05-15"))
	wantContains(t, got, "No outstanding debts.")
}

func TestMortalityMarkdown(t *testing.T) {
	got := MortalityMarkdown(farmBook(), accounting.MustParse("2025-05-15"), 30, "")
	wantContains(t, got,
		"# Mortality between 2025-04-15 and 2025-05-15",
		"Total deaths: 2",
		"Cows",
	)
}

func TestMortalityMarkdownFilterMisses(t *testing.T) {
	got := MortalityMarkdown(farmBook(), accounting.MustParse("2025-05-15"), 30, "hen")
	wantContains(t, got, `Species matching "hen"`, "No deaths recorded in this window.")
}

func TestActivityMarkdown(t *testing.T) {
	r := accounting.NewRange(accounting.MustParse("2025-05-01"), accounting.MustParse("2025-05-15"))
	got := ActivityMarkdown(farmBook(), r)

	wantContains(t, got,
		"# Activity from 2025-05-01 to 2025-05-15",
		"## Transactions",
		"Sold two goats",
		"+$500.00",
		"-$200.00",
		"## Animal Events",
		"DEATH",
		"## Stock Movements",
		"Dairy Meal",
		"fed to calves",
	)

	// newest first: the feed purchase on the 6th renders before the sale on the 5th
	if feed, sale := strings.Index(got, "Dairy meal"), strings.Index(got, "Sold two goats"); feed > sale {
		t.Errorf("transactions not newest first:\n%s", got)
	}
}

func TestActivityMarkdownEmptyRange(t *testing.T) {
	r := accounting.NewRange(accounting.MustParse("2024-01-01"), accounting.MustParse("2024-01-31"))
	got := ActivityMarkdown(farmBook(), r)

	for _, absent := range []string{"## Transactions", "## Animal Events", "## Stock Movements"} {
		if strings.Contains(got, absent) {
			t.Errorf("out-of-range activity has section %q\n%s", absent, got)
		}
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	r := accounting.NewRange(accounting.MustParse("2025-05-01"), accounting.MustParse("2025-05-15"))
	got := TransactionsMarkdown(farmBook(), r)

	wantContains(t, got,
		"# Transactions from 2025-05-01 to 2025-05-15",
		"tx-1", // ids shown so a row can be deleted by id
		"Sold two goats",
		"+$500.00",
		"-$200.00",
	)
}

func TestTransactionsMarkdownEmptyRange(t *testing.T) {
	r := accounting.NewRange(accounting.MustParse("2024-01-01"), accounting.MustParse("2024-01-31"))
	got := TransactionsMarkdown(farmBook(), r)
	wantContains(t, got, "No transactions between 2024-01-01 and 2024-01-31.")
}

func TestListsMarkdown(t *testing.T) {
	b := farmBook()
	on := accounting.MustParse("2025-05-15")

	t.Run("categories", func(t *testing.T) {
		wantContains(t, CategoriesMarkdown(b), "cat-feed", "Feed", "EXPENSE", "Livestock Sales")
	})
	t.Run("accounts", func(t *testing.T) {
		wantContains(t, AccountsMarkdown(b, on),
			"# Accounts on 2025-05-15", "Cash Box", "CASH", "$400.00", "Total Cash: $400.00")
	})
	t.Run("species", func(t *testing.T) {
		wantContains(t, SpeciesMarkdown(b), "Cows", "$200.00", "$1,600.00")
	})
	t.Run("items", func(t *testing.T) {
		wantContains(t, ItemsMarkdown(b), "Dairy Meal", "SHORT_TERM", "40", "$80.00")
	})
	t.Run("assets", func(t *testing.T) {
		wantContains(t, AssetsMarkdown(b), "Tractor", "Machinery", "2024-11-01", "$6,800.00")
	})
	t.Run("liabilities", func(t *testing.T) {
		wantContains(t, LiabilitiesMarkdown(b, on),
			"Tractor Loan", "$1,200.00", "2025-05-20", "DUE_SOON")
	})
}

func TestListsMarkdownEmptyBook(t *testing.T) {
	b := accounting.NewBook("jane@farm.example")
	on := accounting.MustParse("2025-05-15")

	for name, got := range map[string]string{
		"categories":  CategoriesMarkdown(b),
		"accounts":    AccountsMarkdown(b, on),
		"species":     SpeciesMarkdown(b),
		"items":       ItemsMarkdown(b),
		"assets":      AssetsMarkdown(b),
		"liabilities": LiabilitiesMarkdown(b, on),
	} {
		if !strings.Contains(got, "No ") {
			t.Errorf("%s: empty book list should say so, got:\n%s", name, got)
		}
	}
}
