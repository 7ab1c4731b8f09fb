package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/bumlambs-max/Accounting-2.0/clock"
)

type fakeStore struct {
	mu      sync.Mutex
	bins    map[string][]byte
	pullErr error
}

func (f *fakeStore) Push(ctx context.Context, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bins[key] = bytes.Clone(data)
	return nil
}

func (f *fakeStore) Pull(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pullErr != nil {
		return nil, f.pullErr
	}
	data, ok := f.bins[key]
	if !ok {
		return nil, fmt.Errorf("pull %q: %w", key, accounting.ErrNotFound)
	}
	return bytes.Clone(data), nil
}

func newTestServer(t *testing.T) (*gin.Engine, *fakeStore, *accounting.Session) {
	t.Helper()
	st := &fakeStore{bins: make(map[string][]byte)}
	clk := clock.Fake(time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC))
	session := accounting.NewSession(
		accounting.NewBook("jane@farm.example"), st,
		accounting.WithClock(clk),
	)
	t.Cleanup(session.Close)
	return New(session, nil).Router(), st, session
}

func postEvent(t *testing.T, router *gin.Engine, evt accounting.Event) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if err := accounting.EncodeEvent(&buf, evt); err != nil {
		t.Fatalf("encode event: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events", &buf)
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestApplyEventEndpoint(t *testing.T) {
	router, _, _ := newTestServer(t)

	day := accounting.MustParse("2025-05-01")
	w := postEvent(t, router, accounting.NewPutCategory(day, "", accounting.Category{
		ID: "cat-feed", Name: "Feed", Type: accounting.Expense,
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/events = %d, body %s", w.Code, w.Body)
	}
	var resp struct {
		Revision uint64 `json:"revision"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Revision != 1 {
		t.Errorf("revision = %d, want 1", resp.Revision)
	}
}

func TestApplyEventEndpointRejects(t *testing.T) {
	router, _, _ := newTestServer(t)

	t.Run("garbage body", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader("not json")))
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		// transaction against a category that does not exist
		day := accounting.MustParse("2025-05-01")
		w := postEvent(t, router, accounting.NewPutTransaction(day, "", accounting.Transaction{
			Date:     day,
			Amount:   accounting.M(50, "USD"),
			Category: "nope",
			Account:  "nope",
			Type:     accounting.Expense,
		}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
		if !strings.Contains(w.Body.String(), "error") {
			t.Errorf("body = %s, want an error field", w.Body)
		}
	})
}

func TestExportBookEndpoint(t *testing.T) {
	router, _, _ := newTestServer(t)

	day := accounting.MustParse("2025-05-01")
	postEvent(t, router, accounting.NewPutCategory(day, "", accounting.Category{
		ID: "cat-feed", Name: "Feed", Type: accounting.Expense,
	}))

	w := get(router, "/api/book")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/book = %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	book, err := accounting.DecodeBook(w.Body)
	if err != nil {
		t.Fatalf("decode exported book: %v", err)
	}
	if book.Owner != "jane@farm.example" {
		t.Errorf("owner = %q, want jane@farm.example", book.Owner)
	}
	if len(book.Categories) != 1 || book.Categories[0].Name != "Feed" {
		t.Errorf("categories = %+v, want one Feed category", book.Categories)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	router, _, _ := newTestServer(t)
	day := accounting.MustParse("2025-05-10")

	for _, evt := range []accounting.Event{
		accounting.NewPutCategory(day, "", accounting.Category{ID: "cat-feed", Name: "Feed", Type: accounting.Expense}),
		accounting.NewPutCategory(day, "", accounting.Category{ID: "cat-sales", Name: "Livestock Sales", Type: accounting.Income}),
		accounting.NewPutAccount(day, "", accounting.Account{ID: "acc-cash", Name: "Cash Box", Type: accounting.Cash, InitialBalance: accounting.M(100, "USD")}),
		accounting.NewPutTransaction(day, "", accounting.Transaction{ID: "tx-1", Date: day, Amount: accounting.M(500, "USD"), Category: "cat-sales", Account: "acc-cash", Type: accounting.Income}),
		accounting.NewPutTransaction(day, "", accounting.Transaction{ID: "tx-2", Date: day, Amount: accounting.M(200, "USD"), Category: "cat-feed", Account: "acc-cash", Type: accounting.Expense}),
		accounting.NewPutSpecies(day, "", accounting.AnimalSpecies{ID: "sp-cows", Name: "Cows", Count: accounting.Q(10), EstimatedValue: accounting.M(200, "USD")}),
		accounting.NewRecordAnimalLog(day, "", accounting.AnimalLog{Species: "sp-cows", Type: accounting.Death, Quantity: accounting.Q(2), Date: day}),
	} {
		if w := postEvent(t, router, evt); w.Code != http.StatusOK {
			t.Fatalf("seed event %s: status %d, body %s", evt.What(), w.Code, w.Body)
		}
	}

	w := get(router, "/api/dashboard?on=2025-05-20&lookback=30")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/dashboard = %d, body %s", w.Code, w.Body)
	}
	var d dashboard
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}

	if d.Owner != "jane@farm.example" {
		t.Errorf("owner = %q", d.Owner)
	}
	if want := accounting.M(400, "USD"); !d.TotalCash.Equal(want) {
		t.Errorf("totalCash = %v, want %v", d.TotalCash, want)
	}
	if want := accounting.M(500, "USD"); !d.Income.Equal(want) {
		t.Errorf("income = %v, want %v", d.Income, want)
	}
	if want := accounting.M(200, "USD"); !d.Expense.Equal(want) {
		t.Errorf("expense = %v, want %v", d.Expense, want)
	}
	if d.GrossMargin != 60 {
		t.Errorf("grossMargin = %v, want 60", d.GrossMargin)
	}
	// 10 cows bought down to 8 after two deaths
	if want := accounting.M(1600, "USD"); !d.LivestockValue.Equal(want) {
		t.Errorf("livestockValue = %v, want %v", d.LivestockValue, want)
	}
	if len(d.Accounts) != 1 || d.Accounts[0].Name != "Cash Box" {
		t.Fatalf("accounts = %+v, want one Cash Box", d.Accounts)
	}
	if want := accounting.M(400, "USD"); !d.Accounts[0].Balance.Equal(want) {
		t.Errorf("account balance = %v, want %v", d.Accounts[0].Balance, want)
	}
	if !d.Mortality.Total.Equal(accounting.Q(2)) {
		t.Errorf("mortality total = %v, want 2", d.Mortality.Total)
	}
	if len(d.Mortality.BySpecies) != 1 || d.Mortality.BySpecies[0].Name != "Cows" {
		t.Errorf("mortality by species = %+v, want Cows only", d.Mortality.BySpecies)
	}
}

func TestDashboardEndpointRejectsBadQuery(t *testing.T) {
	router, _, _ := newTestServer(t)

	if w := get(router, "/api/dashboard?on=yesterday"); w.Code != http.StatusBadRequest {
		t.Errorf("bad date: status = %d, want 400", w.Code)
	}
	if w := get(router, "/api/dashboard?lookback=-3"); w.Code != http.StatusBadRequest {
		t.Errorf("bad lookback: status = %d, want 400", w.Code)
	}
}

func TestSyncStatusEndpoint(t *testing.T) {
	router, _, _ := newTestServer(t)

	w := get(router, "/api/sync")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/sync = %d", w.Code)
	}
	var status struct {
		Syncing  bool    `json:"syncing"`
		Dirty    bool    `json:"dirty"`
		LastSync *string `json:"lastSync"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Syncing || status.Dirty || status.LastSync != nil {
		t.Errorf("fresh session status = %+v, want all clear", status)
	}

	day := accounting.MustParse("2025-05-01")
	postEvent(t, router, accounting.NewPutCategory(day, "", accounting.Category{ID: "c", Name: "Feed", Type: accounting.Expense}))

	w = get(router, "/api/sync")
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !status.Dirty {
		t.Error("after an edit, dirty = false, want true")
	}
}

func TestRefreshEndpoint(t *testing.T) {
	router, st, _ := newTestServer(t)

	remote := accounting.NewBook("jane@farm.example")
	remote.Revision = 42
	var buf bytes.Buffer
	if err := accounting.EncodeBook(&buf, remote); err != nil {
		t.Fatalf("encode remote: %v", err)
	}
	st.bins["jane@farm.example"] = buf.Bytes()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/refresh = %d, body %s", w.Code, w.Body)
	}
	var resp struct {
		Revision uint64 `json:"revision"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Revision != 42 {
		t.Errorf("revision = %d, want 42", resp.Revision)
	}
}

func TestRefreshEndpointReportsStoreFailure(t *testing.T) {
	router, st, _ := newTestServer(t)
	st.pullErr = fmt.Errorf("store is down")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	if w.Code != http.StatusBadGateway {
		t.Errorf("POST /api/refresh = %d, want 502", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _, _ := newTestServer(t)

	day := accounting.MustParse("2025-05-01")
	postEvent(t, router, accounting.NewPutCategory(day, "", accounting.Category{ID: "c", Name: "Feed", Type: accounting.Expense}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader("not json")))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("rejected event: status = %d", w.Code)
	}

	w = get(router, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"farmbook_events_applied_total 1",
		"farmbook_events_rejected_total 1",
		"farmbook_syncing 0",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestBackupWritesExport(t *testing.T) {
	_, _, session := newTestServer(t)
	if err := session.Apply(accounting.NewPutCategory(accounting.MustParse("2025-05-01"), "", accounting.Category{
		ID: "c", Name: "Feed", Type: accounting.Expense,
	})); err != nil {
		t.Fatalf("apply: %v", err)
	}

	dir := t.TempDir()
	b := NewBackup(session, dir, nil)
	if err := b.writeExport(time.Date(2025, 5, 2, 2, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("writeExport: %v", err)
	}

	book, err := accounting.LoadBook(dir + "/farmbook-2025-05-02.json")
	if err != nil {
		t.Fatalf("LoadBook: %v", err)
	}
	if book.Owner != "jane@farm.example" || len(book.Categories) != 1 {
		t.Errorf("backup book = owner %q, %d categories; want jane@farm.example with 1", book.Owner, len(book.Categories))
	}
}
