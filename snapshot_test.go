package accounting

import (
	"math/rand"
	"testing"
)

func TestAccountBalance(t *testing.T) {
	b := testBook()
	day := MustParse("2025-06-01")
	b.Transactions = []Transaction{
		{ID: "t1", Date: MustParse("2025-05-20"), Amount: USD(400), Category: "cat-sales", Account: "acc-bank", Type: Income},
		{ID: "t2", Date: MustParse("2025-05-25"), Amount: USD(150), Category: "cat-feed", Account: "acc-bank", Type: Expense},
		{ID: "t3", Date: MustParse("2025-06-02"), Amount: USD(999), Category: "cat-feed", Account: "acc-bank", Type: Expense}, // after the snapshot
		{ID: "t4", Date: MustParse("2025-05-26"), Amount: USD(60), Category: "cat-feed", Account: "acc-cash", Type: Expense},
	}
	s := b.NewSnapshot(day)

	if got, want := s.AccountBalance("acc-bank"), USD(1250); !got.Equal(want) {
		t.Errorf("AccountBalance(acc-bank) = %s, want %s", got, want)
	}
	if got, want := s.AccountBalance("acc-cash"), USD(40); !got.Equal(want) {
		t.Errorf("AccountBalance(acc-cash) = %s, want %s", got, want)
	}
	if got := s.AccountBalance("acc-ghost"); !got.IsZero() {
		t.Errorf("AccountBalance(acc-ghost) = %s, want zero", got)
	}
}

func TestAccountBalanceIsOrderIndependent(t *testing.T) {
	b := testBook()
	txs := []Transaction{
		{ID: "t1", Date: MustParse("2025-05-20"), Amount: USD(400), Account: "acc-bank", Category: "cat-sales", Type: Income},
		{ID: "t2", Date: MustParse("2025-05-21"), Amount: USD(120), Account: "acc-bank", Category: "cat-feed", Type: Expense},
		{ID: "t3", Date: MustParse("2025-05-22"), Amount: USD(75), Account: "acc-bank", Category: "cat-vet", Type: Expense},
		{ID: "t4", Date: MustParse("2025-05-23"), Amount: USD(210), Account: "acc-bank", Category: "cat-sales", Type: Income},
		{ID: "t5", Date: MustParse("2025-05-24"), Amount: USD(33), Account: "acc-bank", Category: "cat-feed", Type: Expense},
	}
	b.Transactions = txs
	want := b.NewSnapshot(MustParse("2025-06-01")).AccountBalance("acc-bank")

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := testBook()
		shuffled.Transactions = append([]Transaction(nil), txs...)
		rng.Shuffle(len(shuffled.Transactions), func(a, b int) {
			shuffled.Transactions[a], shuffled.Transactions[b] = shuffled.Transactions[b], shuffled.Transactions[a]
		})
		if got := shuffled.NewSnapshot(MustParse("2025-06-01")).AccountBalance("acc-bank"); !got.Equal(want) {
			t.Fatalf("AccountBalance over shuffled transactions = %s, want %s", got, want)
		}
	}
}

func TestCashflowAndMargin(t *testing.T) {
	testCases := []struct {
		name         string
		income       float64
		expense      float64
		wantMargin   Percent
		wantProgress Percent
		wantGap      Money
	}{
		{"profit", 1000, 600, 40, 100, USD(0)},
		{"at breakeven", 500, 500, 0, 100, USD(0)},
		{"loss", 400, 1000, -150, 40, USD(600)},
		{"no income", 0, 250, 0, 0, USD(250)},
		{"no expense", 300, 0, 100, 100, USD(0)},
		{"empty books", 0, 0, 0, 100, NO(0)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := testBook()
			day := MustParse("2025-06-01")
			if tc.income > 0 {
				b.Transactions = append(b.Transactions,
					Transaction{ID: "in", Date: day, Amount: USD(tc.income), Category: "cat-sales", Account: "acc-bank", Type: Income})
			}
			if tc.expense > 0 {
				b.Transactions = append(b.Transactions,
					Transaction{ID: "out", Date: day, Amount: USD(tc.expense), Category: "cat-feed", Account: "acc-bank", Type: Expense})
			}
			s := b.NewSnapshot(day)

			if got := s.GrossMargin(); !got.Equal(tc.wantMargin) {
				t.Errorf("GrossMargin() = %v, want %v", got, tc.wantMargin)
			}
			if got := s.BreakevenProgress(); !got.Equal(tc.wantProgress) {
				t.Errorf("BreakevenProgress() = %v, want %v", got, tc.wantProgress)
			}
			if got := s.BreakevenGap(); !got.Equal(tc.wantGap) {
				t.Errorf("BreakevenGap() = %s, want %s", got, tc.wantGap)
			}
		})
	}
}

func TestTopExpenseCategories(t *testing.T) {
	b := testBook()
	day := MustParse("2025-06-01")
	b.Transactions = []Transaction{
		{ID: "t1", Date: day, Amount: USD(100), Category: "cat-feed", Account: "acc-bank", Type: Expense},
		{ID: "t2", Date: day, Amount: USD(300), Category: "cat-vet", Account: "acc-bank", Type: Expense},
		{ID: "t3", Date: day, Amount: USD(50), Category: "cat-feed", Account: "acc-cash", Type: Expense},
		{ID: "t4", Date: day, Amount: USD(80), Category: "cat-gone", Account: "acc-bank", Type: Expense},  // archived category
		{ID: "t5", Date: day, Amount: USD(10), Category: "cat-gone2", Account: "acc-bank", Type: Expense}, // archived category
		{ID: "t6", Date: day, Amount: USD(900), Category: "cat-sales", Account: "acc-bank", Type: Income}, // not an expense
	}
	s := b.NewSnapshot(day)

	got := s.TopExpenseCategories(3)
	want := []CategoryTotal{
		{Name: "Veterinary", Total: USD(300)},
		{Name: "Feed", Total: USD(150)},
		{Name: "Other", Total: USD(90)},
	}
	if len(got) != len(want) {
		t.Fatalf("TopExpenseCategories(3) returned %d buckets, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name != want[i].Name || !got[i].Total.Equal(want[i].Total) {
			t.Errorf("bucket[%d] = %s %s, want %s %s", i, got[i].Name, got[i].Total, want[i].Name, want[i].Total)
		}
	}

	if got := s.TopExpenseCategories(1); len(got) != 1 || got[0].Name != "Veterinary" {
		t.Errorf("TopExpenseCategories(1) = %v, want just Veterinary", got)
	}
}

func TestValuations(t *testing.T) {
	b := testBook()
	s := b.NewSnapshot(MustParse("2025-06-01"))

	// 10 cows at 200 plus 50 hens at 5.
	if got, want := s.LivestockValue(), USD(2250); !got.Equal(want) {
		t.Errorf("LivestockValue() = %s, want %s", got, want)
	}
	// 40 bags at 2.
	if got, want := s.InventoryValue(), USD(80); !got.Equal(want) {
		t.Errorf("InventoryValue() = %s, want %s", got, want)
	}
	if got, want := s.AssetValue(), USD(2500); !got.Equal(want) {
		t.Errorf("AssetValue() = %s, want %s", got, want)
	}
	if got, want := s.TotalLiabilities(), USD(1200); !got.Equal(want) {
		t.Errorf("TotalLiabilities() = %s, want %s", got, want)
	}
	// Cash 1100 + livestock 2250 + inventory 80 + assets 2500 - debts 1200.
	if got, want := s.NetWorth(), USD(4730); !got.Equal(want) {
		t.Errorf("NetWorth() = %s, want %s", got, want)
	}
}

func TestDueStatus(t *testing.T) {
	on := MustParse("2025-06-10")
	s := testBook().NewSnapshot(on)
	testCases := []struct {
		name    string
		due     Date
		balance Money
		want    DueStatus
	}{
		{"yesterday", MustParse("2025-06-09"), USD(100), Overdue},
		{"today", MustParse("2025-06-10"), USD(100), DueToday},
		{"tomorrow", MustParse("2025-06-11"), USD(100), DueSoon},
		{"in seven days", MustParse("2025-06-17"), USD(100), DueSoon},
		{"in eight days", MustParse("2025-06-18"), USD(100), Normal},
		{"overdue but settled", MustParse("2025-06-01"), USD(0), Normal},
		{"no due date", Date{}, USD(100), Normal},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.DueStatus(tc.due, tc.balance); got != tc.want {
				t.Errorf("DueStatus(%s, %s) = %s, want %s", tc.due, tc.balance, got, tc.want)
			}
		})
	}
}

func TestDebtSummaryWindow(t *testing.T) {
	on := MustParse("2025-06-01")
	testCases := []struct {
		name         string
		due          Date
		wantUpcoming bool
	}{
		{"due on day 30 is flagged", on.Add(30), true},
		{"due on day 31 is not", on.Add(31), false},
		{"due today is flagged", on, true},
		{"overdue is flagged", on.Add(-10), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := testBook()
			b.Liabilities = []Liability{{
				ID: "li-1", Name: "Loan", OriginalAmount: USD(1000), CurrentBalance: USD(400),
				InstallmentAmount: USD(100), DueDate: tc.due,
			}}
			sum := b.NewSnapshot(on).DebtSummary()
			if got := len(sum.Upcoming) == 1; got != tc.wantUpcoming {
				t.Errorf("flagged = %v, want %v", got, tc.wantUpcoming)
			}
		})
	}
}

func TestDebtSummaryAmounts(t *testing.T) {
	on := MustParse("2025-06-01")
	b := testBook()
	b.Liabilities = []Liability{
		// Installment smaller than balance: the installment is due.
		{ID: "li-1", Name: "Tractor", CurrentBalance: USD(1200), InstallmentAmount: USD(300), DueDate: on.Add(5)},
		// Balance smaller than installment: only the remainder is due.
		{ID: "li-2", Name: "Vet bill", CurrentBalance: USD(80), InstallmentAmount: USD(200), DueDate: on.Add(10)},
		// No installment set: the whole balance is due.
		{ID: "li-3", Name: "Neighbour", CurrentBalance: USD(50), DueDate: on.Add(1)},
		// Settled: never flagged, whatever the date.
		{ID: "li-4", Name: "Paid off", CurrentBalance: USD(0), InstallmentAmount: USD(100), DueDate: on.Add(2)},
		// Open but no due date: counted in outstanding, not flagged.
		{ID: "li-5", Name: "Open ended", CurrentBalance: USD(500)},
	}
	sum := b.NewSnapshot(on).DebtSummary()

	if got, want := sum.TotalOutstanding, USD(1830); !got.Equal(want) {
		t.Errorf("TotalOutstanding = %s, want %s", got, want)
	}
	if got, want := len(sum.Upcoming), 3; got != want {
		t.Fatalf("len(Upcoming) = %d, want %d", got, want)
	}
	// Sorted by due date.
	if got, want := sum.Upcoming[0].Liability.ID, "li-3"; got != want {
		t.Errorf("Upcoming[0] = %s, want %s", got, want)
	}
	if got, want := sum.Upcoming[0].AmountDue, USD(50); !got.Equal(want) {
		t.Errorf("Upcoming[0].AmountDue = %s, want %s", got, want)
	}
	if got, want := sum.Upcoming[1].AmountDue, USD(300); !got.Equal(want) {
		t.Errorf("Upcoming[1].AmountDue = %s, want %s", got, want)
	}
	if got, want := sum.Upcoming[2].AmountDue, USD(80); !got.Equal(want) {
		t.Errorf("Upcoming[2].AmountDue = %s, want the open remainder %s", got, want)
	}
	if got, want := sum.TotalDueSoon, USD(430); !got.Equal(want) {
		t.Errorf("TotalDueSoon = %s, want %s", got, want)
	}
}

func TestMortality(t *testing.T) {
	on := MustParse("2025-06-30")
	b := testBook()
	b.AnimalLogs = []AnimalLog{
		{ID: "l1", Species: "sp-cows", Date: MustParse("2025-06-20"), Type: Death, Quantity: Q(2)},
		{ID: "l2", Species: "sp-hens", Date: MustParse("2025-06-25"), Type: Death, Quantity: Q(5)},
		{ID: "l3", Species: "sp-cows", Date: MustParse("2025-06-28"), Type: Sold, Quantity: Q(1)},  // not a death
		{ID: "l4", Species: "sp-cows", Date: MustParse("2025-04-01"), Type: Death, Quantity: Q(9)}, // outside the window
		{ID: "l5", Species: "sp-gone", Date: MustParse("2025-06-29"), Type: Death, Quantity: Q(1)}, // archived species
	}
	s := b.NewSnapshot(on)

	t.Run("unfiltered", func(t *testing.T) {
		sum := s.Mortality(30, "")
		if got, want := sum.Total, Q(8); !got.Equal(want) {
			t.Errorf("Total = %s, want %s", got, want)
		}
		if got, want := len(sum.BySpecies), 3; got != want {
			t.Fatalf("len(BySpecies) = %d, want %d", got, want)
		}
		if got, want := sum.BySpecies[2].Name, "Archived Species"; got != want {
			t.Errorf("BySpecies[2].Name = %q, want %q", got, want)
		}
	})

	t.Run("filter by species name", func(t *testing.T) {
		sum := s.Mortality(30, "cow")
		if got, want := sum.Total, Q(2); !got.Equal(want) {
			t.Errorf("Total = %s, want %s", got, want)
		}
		if len(sum.BySpecies) != 1 || sum.BySpecies[0].Name != "Cows" {
			t.Errorf("BySpecies = %v, want just Cows", sum.BySpecies)
		}
	})

	t.Run("filter is case-insensitive", func(t *testing.T) {
		if got, want := s.Mortality(30, "HEN").Total, Q(5); !got.Equal(want) {
			t.Errorf("Total = %s, want %s", got, want)
		}
	})

	t.Run("filter with no match", func(t *testing.T) {
		sum := s.Mortality(30, "zebra")
		if !sum.Total.IsZero() || len(sum.BySpecies) != 0 {
			t.Errorf("Mortality(30, zebra) = %v, want empty", sum)
		}
	})

	t.Run("window respects lookback", func(t *testing.T) {
		if got, want := s.Mortality(120, "").Total, Q(17); !got.Equal(want) {
			t.Errorf("Total over 120 days = %s, want %s", got, want)
		}
	})
}

func TestReferenceLabels(t *testing.T) {
	s := testBook().NewSnapshot(MustParse("2025-06-01"))
	testCases := []struct {
		name string
		got  string
		want string
	}{
		{"known account", s.AccountName("acc-bank"), "Co-op Bank"},
		{"unknown account", s.AccountName("acc-ghost"), "Unknown Account"},
		{"known category", s.CategoryName("cat-feed"), "Feed"},
		{"unknown category", s.CategoryName("cat-ghost"), "Other"},
		{"known species", s.SpeciesName("sp-cows"), "Cows"},
		{"unknown species", s.SpeciesName("sp-ghost"), "Archived Species"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %q, want %q", tc.got, tc.want)
			}
		})
	}
}
