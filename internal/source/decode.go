package source

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/JonMunkholm/formnav/internal/core"
)

// wireRecord is a record with every field left undecoded, so a badly typed
// value affects only that value.
type wireRecord struct {
	ID        json.RawMessage `json:"id"`
	DateTime  json.RawMessage `json:"date_time"`
	FirstName json.RawMessage `json:"first_name"`
	LastName  json.RawMessage `json:"last_name"`
	Email     json.RawMessage `json:"email"`
	Phone     json.RawMessage `json:"phone"`
	Company   json.RawMessage `json:"company"`
	Industry  json.RawMessage `json:"industry"`
	Comment   json.RawMessage `json:"comment"`
	Reason    json.RawMessage `json:"reason"`
}

// DecodeRecords parses a JSON array of records. A body that is not an array,
// including null or an object, is ErrMalformedPayload.
//
// Field values are taken as they come: numbers and booleans keep their JSON
// spelling as text. Elements that are not objects, or whose id is not an
// integer, are skipped.
func DecodeRecords(body []byte) ([]core.Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedPayload)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	records := make([]core.Record, 0, len(elems))
	for _, raw := range elems {
		if r, ok := decodeRecord(raw); ok {
			records = append(records, r)
		}
	}
	return records, nil
}

func decodeRecord(raw json.RawMessage) (core.Record, bool) {
	var w wireRecord
	if err := json.Unmarshal(raw, &w); err != nil {
		return core.Record{}, false
	}
	id, ok := recordID(w.ID)
	if !ok {
		return core.Record{}, false
	}
	return core.Record{
		ID:        id,
		DateTime:  scalar(w.DateTime),
		FirstName: text(w.FirstName),
		LastName:  text(w.LastName),
		Email:     text(w.Email),
		Phone:     scalar(w.Phone),
		Company:   scalar(w.Company),
		Industry:  scalar(w.Industry),
		Comment:   scalar(w.Comment),
		Reason:    scalar(w.Reason),
	}, true
}

// recordID accepts an integer or a string holding one.
func recordID(raw json.RawMessage) (int64, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	id, err := n.Int64()
	return id, err == nil
}

// scalar is nil for null or a missing key. Strings are unquoted; anything
// else keeps its JSON text.
func scalar(raw json.RawMessage) *string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return &s
		}
	}
	s := string(raw)
	return &s
}

func text(raw json.RawMessage) string {
	if s := scalar(raw); s != nil {
		return *s
	}
	return ""
}
