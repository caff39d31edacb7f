package txn

import (
	"bytes"
	"encoding/json"
)

// Field is an optional, loosely typed value of a raw transaction record.
// It keeps the text exactly as it appeared in the source so that defaulting
// and validation can happen in one place.
type Field struct {
	Value string
	Set   bool
}

// F returns a set Field holding v.
func F(v string) Field {
	return Field{Value: v, Set: true}
}

// IsEmpty reports whether the field is absent or blank.
func (f Field) IsEmpty() bool {
	return !f.Set || len(bytes.TrimSpace([]byte(f.Value))) == 0
}

// UnmarshalJSON accepts strings, numbers and any other JSON value.
// Strings are unquoted; everything else keeps its raw JSON text. A null
// leaves the field unset.
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = F(s)
		return nil
	}

	*f = F(string(data))
	return nil
}

// Input is a raw transaction record as received from a request or a spreadsheet.
type Input struct {
	Type             Field `json:"type"`
	Date             Field `json:"date"`
	BuyCoin          Field `json:"buyCoin"`
	SellCoin         Field `json:"sellCoin"`
	BuyAmount        Field `json:"buyAmount"`
	SellAmount       Field `json:"sellAmount"`
	BuyPricePerCoin  Field `json:"buyPricePerCoin"`
	SellPricePerCoin Field `json:"sellPricePerCoin"`

	// Pos is the source location of the record, when known.
	Pos Position `json:"-"`

	// Invalid is set when the record could not be read at all, for example a
	// batch element that is not a JSON object. Normalizing such a record
	// always fails with this error.
	Invalid error `json:"-"`
}
