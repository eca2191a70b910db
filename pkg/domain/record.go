package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Record is an arbitrary JSON object stored under a collection. The only
// field the gateway looks at is "id".
type Record map[string]interface{}

// IDField is the name of the field that identifies a record.
const IDField = "id"

// ID returns the record id formatted the way it appears in storage keys.
// Strings are used verbatim and numbers keep their JSON text.
func (r Record) ID() (string, error) {
	raw, ok := r[IDField]
	if !ok || raw == nil {
		return "", NewError(KindValidation, "record.id", ErrMissingID)
	}

	var id string
	switch v := raw.(type) {
	case string:
		id = v
	case json.Number:
		id = v.String()
	case float64:
		id = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		id = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		id = strconv.Itoa(v)
	case int64:
		id = strconv.FormatInt(v, 10)
	case int32:
		id = strconv.FormatInt(int64(v), 10)
	case uint64:
		id = strconv.FormatUint(v, 10)
	default:
		return "", NewError(KindValidation, "record.id", fmt.Errorf("%w: got %T", ErrInvalidID, raw))
	}

	if strings.TrimSpace(id) == "" {
		return "", NewError(KindValidation, "record.id", ErrMissingID)
	}
	return id, nil
}

// DecodeRecord parses exactly one JSON object, keeping numbers as json.Number
// so they are echoed back exactly as received.
func DecodeRecord(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("expected a JSON object, got null")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after the JSON object")
	}
	return rec, nil
}

// EncodeRecord serialises a record for storage.
func EncodeRecord(rec Record) ([]byte, error) {
	return json.Marshal(rec)
}
