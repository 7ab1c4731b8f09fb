package accounting

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ExportVersion tags the book export document format.
const ExportVersion = "2.0"

// EncodeBook writes the book as a single JSON document with stable key
// order: the export file, the sync payload and the HTTP book endpoint all
// produce these exact bytes. Collections are emitted even when empty, since
// an import distinguishes an empty collection from a missing one.
func EncodeBook(w io.Writer, b *Book) error {
	var obj jsonObjectWriter
	obj.Append("version", ExportVersion)
	obj.Append("exportedAt", time.Now().UTC().Format(time.RFC3339))
	obj.Append("owner", b.Owner)
	obj.Append("revision", b.Revision)
	obj.Append("compactLayout", b.CompactLayout)
	obj.Append("navItems", emptied(b.NavItems))
	obj.Append("categories", emptied(b.Categories))
	obj.Append("accounts", emptied(b.Accounts))
	obj.Append("transactions", emptied(b.Transactions))
	obj.Append("species", emptied(b.Species))
	obj.Append("animalLogs", emptied(b.AnimalLogs))
	obj.Append("items", emptied(b.Items))
	obj.Append("movements", emptied(b.Movements))
	obj.Append("assets", emptied(b.Assets))
	obj.Append("liabilities", emptied(b.Liabilities))
	data, err := obj.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte{'\n'})
	return err
}

// emptied turns a nil slice into an empty one so it encodes as [] and not
// null.
func emptied[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// DecodeBook reads a book export document. It accepts the document only
// wholesale: a version this code does not understand, malformed JSON, or a
// document lacking the transactions or categories collections is rejected
// without producing a partial book. An absent version tag is tolerated for
// exports predating the tag.
func DecodeBook(r io.Reader) (*Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var rec struct {
		Version       string              `json:"version"`
		Owner         string              `json:"owner"`
		Revision      uint64              `json:"revision"`
		CompactLayout bool                `json:"compactLayout"`
		NavItems      []NavItem           `json:"navItems"`
		Categories    json.RawMessage     `json:"categories"`
		Accounts      []Account           `json:"accounts"`
		Transactions  json.RawMessage     `json:"transactions"`
		Species       []AnimalSpecies     `json:"species"`
		AnimalLogs    []AnimalLog         `json:"animalLogs"`
		Items         []InventoryItem     `json:"items"`
		Movements     []InventoryMovement `json:"movements"`
		Assets        []Asset             `json:"assets"`
		Liabilities   []Liability         `json:"liabilities"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("not a book export: %w", err)
	}
	if rec.Version != "" && rec.Version != ExportVersion {
		return nil, fmt.Errorf("unsupported export version %q, this build reads %q", rec.Version, ExportVersion)
	}
	if rec.Categories == nil || rec.Transactions == nil {
		return nil, errors.New("not a book export: transactions and categories collections are required")
	}
	b := &Book{
		Owner:         rec.Owner,
		Revision:      rec.Revision,
		CompactLayout: rec.CompactLayout,
		NavItems:      rec.NavItems,
		Accounts:      rec.Accounts,
		Species:       rec.Species,
		AnimalLogs:    rec.AnimalLogs,
		Items:         rec.Items,
		Movements:     rec.Movements,
		Assets:        rec.Assets,
		Liabilities:   rec.Liabilities,
	}
	if err := json.Unmarshal(rec.Categories, &b.Categories); err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	if err := json.Unmarshal(rec.Transactions, &b.Transactions); err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	return b, nil
}

// EncodeEvent writes one event as a single JSON line. All event types carry
// an "event" tag naming their variant, so a stream of lines decodes back
// without further framing.
func EncodeEvent(w io.Writer, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte{'\n'})
	return err
}

// decodeAs decodes data into a concrete event type.
func decodeAs[T Event](data []byte) (Event, error) {
	var e T
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return e, nil
}

// DecodeEvent identifies the event type from the "event" tag and decodes the
// line into the matching concrete type.
func DecodeEvent(data []byte) (Event, error) {
	var identifier struct {
		Event EventType `json:"event"`
	}
	if err := json.Unmarshal(data, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify event in %q: %w", string(data), err)
	}
	switch identifier.Event {
	case EvtPutCategory:
		return decodeAs[PutCategory](data)
	case EvtDeleteCategory:
		return decodeAs[DeleteCategory](data)
	case EvtPutAccount:
		return decodeAs[PutAccount](data)
	case EvtDeleteAccount:
		return decodeAs[DeleteAccount](data)
	case EvtPutTransaction:
		return decodeAs[PutTransaction](data)
	case EvtDeleteTransaction:
		return decodeAs[DeleteTransaction](data)
	case EvtPutSpecies:
		return decodeAs[PutSpecies](data)
	case EvtDeleteSpecies:
		return decodeAs[DeleteSpecies](data)
	case EvtPutItem:
		return decodeAs[PutItem](data)
	case EvtDeleteItem:
		return decodeAs[DeleteItem](data)
	case EvtPutAsset:
		return decodeAs[PutAsset](data)
	case EvtDeleteAsset:
		return decodeAs[DeleteAsset](data)
	case EvtPutLiability:
		return decodeAs[PutLiability](data)
	case EvtDeleteLiability:
		return decodeAs[DeleteLiability](data)
	case EvtAnimalLog:
		return decodeAs[RecordAnimalLog](data)
	case EvtStockMove:
		return decodeAs[RecordMovement](data)
	case EvtPayLiability:
		return decodeAs[RecordPayment](data)
	case EvtSetNav:
		return decodeAs[SetNavItems](data)
	case EvtSetLayout:
		return decodeAs[SetCompactLayout](data)
	default:
		return nil, fmt.Errorf("unknown event type %q", identifier.Event)
	}
}

// DecodeEvents reads a stream of JSON lines, one event per line. Empty lines
// are skipped.
func DecodeEvents(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		evt, err := DecodeEvent(line)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
