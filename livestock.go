package accounting

import (
	"fmt"
	"strings"
)

// LogType identifies the kind of herd event an animal log records.
type LogType string

const (
	Bought LogType = "BOUGHT"
	Birth  LogType = "BIRTH"
	Sold   LogType = "SOLD"
	Death  LogType = "DEATH"
)

// ParseLogType parses a string into a LogType.
func ParseLogType(s string) (LogType, error) {
	switch t := LogType(strings.ToUpper(strings.TrimSpace(s))); t {
	case Bought, Birth, Sold, Death:
		return t, nil
	default:
		return "", fmt.Errorf("unknown animal log type %q, want BOUGHT, BIRTH, SOLD or DEATH", s)
	}
}

// Increases reports whether logs of this type grow the herd count.
func (t LogType) Increases() bool { return t == Bought || t == Birth }

// AnimalSpecies is one herd line: a species or group of animals tracked as a
// single headcount. Count is a running total maintained by animal logs; it is
// only set directly through an explicit species edit.
type AnimalSpecies struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Tag            string   `json:"tag,omitempty"`
	Breed          string   `json:"breed,omitempty"`
	Count          Quantity `json:"count"`
	EstimatedValue Money    `json:"estimatedValue"` // per head
}

// MarshalJSON implements the json.Marshaler interface for AnimalSpecies.
func (s AnimalSpecies) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", s.ID)
	w.Append("name", s.Name)
	w.Optional("tag", s.Tag)
	w.Optional("breed", s.Breed)
	w.Append("count", s.Count)
	w.Append("estimatedValue", s.EstimatedValue.exact())
	return w.MarshalJSON()
}

func (s AnimalSpecies) Equal(o AnimalSpecies) bool {
	return s.ID == o.ID && s.Name == o.Name && s.Tag == o.Tag && s.Breed == o.Breed &&
		s.Count.Equal(o.Count) && s.EstimatedValue.Equal(o.EstimatedValue)
}

// AnimalLog is one append-only herd event. BOUGHT and BIRTH raise the species
// count, SOLD and DEATH lower it, never below zero.
type AnimalLog struct {
	ID          string   `json:"id"`
	Species     string   `json:"speciesId"`
	Date        Date     `json:"date"`
	Type        LogType  `json:"type"`
	Quantity    Quantity `json:"quantity"`
	Note        string   `json:"note,omitempty"`
	ValueAtTime Money    `json:"valueAtTime"` // per head value when the event was recorded
}

// MarshalJSON implements the json.Marshaler interface for AnimalLog.
func (l AnimalLog) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", l.ID)
	w.Append("speciesId", l.Species)
	w.Append("date", l.Date)
	w.Append("type", l.Type)
	w.Append("quantity", l.Quantity)
	w.Optional("note", l.Note)
	w.Append("valueAtTime", l.ValueAtTime.exact())
	return w.MarshalJSON()
}

func (l AnimalLog) Equal(o AnimalLog) bool {
	return l.ID == o.ID && l.Species == o.Species && l.Date == o.Date && l.Type == o.Type &&
		l.Quantity.Equal(o.Quantity) && l.Note == o.Note && l.ValueAtTime.Equal(o.ValueAtTime)
}
