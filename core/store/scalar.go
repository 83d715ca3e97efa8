package store

import (
	"bytes"
	"database/sql/driver"

	"github.com/goccy/go-json"
)

// Scalar is a column value as it arrived in a request body. It is not
// interpreted: strings, numbers and booleans are handed to the database as
// text and the database decides whether they fit the column. A missing or
// null value becomes SQL NULL.
type Scalar struct {
	raw json.RawMessage
}

// Reference is a foreign key column value
type Reference = Scalar

// NewScalar returns a scalar holding the string s
func NewScalar(s string) Scalar {
	b, _ := json.Marshal(s)
	return Scalar{raw: b}
}

// NewReference returns a reference from its textual form
func NewReference(s string) Reference {
	return NewScalar(s)
}

// IsNull returns true if the value was absent or null
func (v Scalar) IsNull() bool {
	return len(v.raw) == 0 || bytes.Equal(v.raw, []byte("null"))
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Scalar) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], bytes.TrimSpace(data)...)
	return nil
}

// MarshalJSON implements json.Marshaler
func (v Scalar) MarshalJSON() ([]byte, error) {
	if v.IsNull() {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// Value implements driver.Valuer. Strings are unquoted, every other JSON value
// is passed as its literal text.
func (v Scalar) Value() (driver.Value, error) {
	if v.IsNull() {
		return nil, nil
	}
	if v.raw[0] == '"' {
		var s string
		if err := json.Unmarshal(v.raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	}
	return string(v.raw), nil
}
