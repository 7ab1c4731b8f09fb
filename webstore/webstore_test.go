package webstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	accounting "github.com/bumlambs-max/Accounting-2.0"
)

// binServer fakes a jsonbin-style service: PUT stores the body, GET
// answers it wrapped in a {"metadata":..., "record":...} envelope.
func binServer(t *testing.T) (*httptest.Server, map[string][]byte) {
	t.Helper()
	bins := make(map[string][]byte)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.Header.Get("X-Access-Key"), "test-key"; got != want {
			t.Errorf("X-Access-Key = %q, want %q", got, want)
		}
		key := strings.TrimPrefix(r.URL.Path, "/bins/")
		switch r.Method {
		case http.MethodPut:
			body, err := io.ReadAll(r.Body)
			if err != nil {
				t.Errorf("read body: %v", err)
			}
			bins[key] = body
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			data, ok := bins[key]
			if !ok {
				http.NotFound(w, r)
				return
			}
			fmt.Fprintf(w, `{"metadata":{"id":%q},"record":%s}`, key, data)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, bins
}

func TestClientPushPull(t *testing.T) {
	srv, bins := binServer(t)
	c, err := New(Config{BaseURL: srv.URL + "/bins", APIKey: "test-key", Envelope: "$.record"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	book := []byte(`{"owner":"jane@farm.example","revision":7}`)
	if err := c.Push(ctx, "jane@farm.example", book); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if got := bins["jane@farm.example"]; string(got) != string(book) {
		t.Errorf("stored bin = %s, want %s", got, book)
	}

	got, err := c.Pull(ctx, "jane@farm.example")
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	// the envelope is stripped, leaving only the book
	if string(got) != string(book) {
		t.Errorf("Pull = %s, want %s", got, book)
	}
}

func TestClientPullMissingBin(t *testing.T) {
	srv, _ := binServer(t)
	c, err := New(Config{BaseURL: srv.URL + "/bins", APIKey: "test-key"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.Pull(context.Background(), "nobody@farm.example")
	if !errors.Is(err, accounting.ErrNotFound) {
		t.Errorf("Pull(missing) = %v, want ErrNotFound", err)
	}
}

func TestClientPullWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"owner":"jane@farm.example","revision":3}`)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Pull(context.Background(), "jane@farm.example")
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if want := `{"owner":"jane@farm.example","revision":3}`; string(got) != want {
		t.Errorf("Pull = %s, want %s", got, want)
	}
}

func TestClientReportsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	if err := c.Push(ctx, "k", []byte(`{}`)); err == nil {
		t.Error("Push to failing server: got nil error")
	}
	if _, err := c.Pull(ctx, "k"); err == nil {
		t.Error("Pull from failing server: got nil error")
	} else if errors.Is(err, accounting.ErrNotFound) {
		t.Errorf("Pull from failing server = ErrNotFound, want a plain error")
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New with empty base url: got nil error")
	}
}
