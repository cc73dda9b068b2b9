package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when a value cannot be read as a record identifier.
var ErrInvalidID = errors.New("invalid id")

// ID identifies a stored record (user, event, comment, photo, category, location).
// Path parameters, JSON bodies and token claims all pass through ParseID or
// UnmarshalJSON, so "42" and 42 become the same value before any comparison.
type ID int64

// ParseID reads a positive decimal identifier. Surrounding whitespace is ignored;
// anything else that is not a digit is rejected.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidID
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidID
	}
	return ID(n), nil
}

// Valid reports whether id can reference a stored record.
func (id ID) Valid() bool { return id > 0 }

// Equal is the one identity comparison used by the authorization rules.
// The zero value never equals anything, including itself.
func (id ID) Equal(other ID) bool {
	return id.Valid() && id == other
}

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// UnmarshalJSON accepts both numbers and numeric strings.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ErrInvalidID
		}
		v, err := ParseID(s)
		if err != nil {
			return err
		}
		*id = v
		return nil
	}
	v, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}
