package txn

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Numbers beyond these bounds are treated as non-numeric.
const (
	maxExponent = 30
	maxDigits   = 40
)

// Normalizer converts raw Inputs into Transactions.
//
// In lenient mode (the default) non-numeric and negative values silently
// become zero. Strict mode reports them as InvalidFieldError, together with
// unrecognized transaction types, so that malformed source data is not masked.
type Normalizer struct {
	Strict bool

	// Now supplies the timestamp for records without a date.
	// Defaults to time.Now.
	Now func() time.Time
}

// NewNormalizer creates a lenient normalizer using the wall clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{Now: time.Now}
}

// Normalize applies all defaulting rules to in. The returned Transaction is
// populated as far as possible even when an error is returned, so callers can
// still report which record failed.
func (n *Normalizer) Normalize(in Input) (Transaction, error) {
	tx := Transaction{
		Type:     ParseType(in.Type.Value),
		Date:     strings.TrimSpace(in.Date.Value),
		BuyCoin:  symbol(in.BuyCoin),
		SellCoin: symbol(in.SellCoin),
		Pos:      in.Pos,
	}

	if tx.Date == "" {
		now := time.Now
		if n.Now != nil {
			now = n.Now
		}
		tx.Date = now().Format(DateLayout)
	}

	if in.Invalid != nil {
		tx.Type = Unknown
		return tx, in.Invalid
	}

	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if n.Strict && tx.Type == Unknown {
		record(&InvalidFieldError{Field: "type", Value: in.Type.Value, Reason: "expected BUY, SELL or TRADE", Pos: in.Pos})
	}

	var err error
	tx.BuyAmount, err = n.number("buyAmount", in.BuyAmount, in.Pos)
	record(err)
	tx.SellAmount, err = n.number("sellAmount", in.SellAmount, in.Pos)
	record(err)
	tx.BuyPricePerCoin, err = n.number("buyPricePerCoin", in.BuyPricePerCoin, in.Pos)
	record(err)
	tx.SellPricePerCoin, err = n.number("sellPricePerCoin", in.SellPricePerCoin, in.Pos)
	record(err)

	return tx, firstErr
}

// number parses a non-negative decimal. Absent and blank fields are zero.
func (n *Normalizer) number(name string, f Field, pos Position) (decimal.Decimal, error) {
	if f.IsEmpty() {
		return decimal.Zero, nil
	}

	value := strings.TrimSpace(f.Value)
	d, err := decimal.NewFromString(value)
	if err != nil {
		if n.Strict {
			return decimal.Zero, &InvalidFieldError{Field: name, Value: value, Reason: "not a number", Pos: pos}
		}
		return decimal.Zero, nil
	}

	if !inRange(d) {
		if n.Strict {
			return decimal.Zero, &InvalidFieldError{Field: name, Value: value, Reason: "out of range", Pos: pos}
		}
		return decimal.Zero, nil
	}

	if d.IsNegative() {
		if n.Strict {
			return decimal.Zero, &InvalidFieldError{Field: name, Value: value, Reason: "must not be negative", Pos: pos}
		}
		return decimal.Zero, nil
	}

	return d, nil
}

// inRange reports whether d has a bounded exponent and precision.
func inRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > maxExponent || exp < -maxExponent {
		return false
	}
	return d.NumDigits() <= maxDigits
}

func symbol(f Field) string {
	s := strings.TrimSpace(f.Value)
	if s == "" {
		return UnknownSymbol
	}
	return s
}
