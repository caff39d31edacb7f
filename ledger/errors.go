package ledger

import (
	"errors"
	"fmt"

	"github.com/robinvdvleuten/costbasis/txn"
	"github.com/shopspring/decimal"
)

// Sentinel errors matched with errors.Is.
var (
	ErrUnknownAsset        = errors.New("unknown asset")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNegativeAmount      = errors.New("negative amount")
)

// UnknownAssetError is returned when a disposal references a symbol that was never acquired.
type UnknownAssetError struct {
	Symbol string
}

func (e *UnknownAssetError) Error() string {
	return fmt.Sprintf("no balance for coin %s", e.Symbol)
}

func (e *UnknownAssetError) Is(target error) bool {
	return target == ErrUnknownAsset
}

// InsufficientBalanceError is returned when the lots of a symbol cannot cover a disposal.
type InsufficientBalanceError struct {
	Symbol    string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for coin %s: requested %s, available %s",
		e.Symbol, e.Requested, e.Available)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// NegativeAmountError is returned when a lot or a disposal is given a negative quantity.
type NegativeAmountError struct {
	Symbol string
	Amount decimal.Decimal
}

func (e *NegativeAmountError) Error() string {
	return fmt.Sprintf("negative amount %s for coin %s", e.Amount, e.Symbol)
}

func (e *NegativeAmountError) Is(target error) bool {
	return target == ErrNegativeAmount
}

// TransactionError ties a processing failure to the transaction that caused it.
type TransactionError struct {
	Transaction txn.Transaction
	Err         error
}

func (e *TransactionError) Error() string {
	// Format: filename:line: message
	if !e.Transaction.Pos.IsZero() {
		return fmt.Sprintf("%s: %s", e.Transaction.Pos, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Transaction.Date, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

func (e *TransactionError) GetPosition() txn.Position {
	return e.Transaction.Pos
}

func (e *TransactionError) GetTransaction() txn.Transaction {
	return e.Transaction
}
