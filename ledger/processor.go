package ledger

import (
	"context"

	"github.com/robinvdvleuten/costbasis/txn"
)

// Processor applies single transactions to an inventory.
type Processor struct {
	inventory *Inventory
}

// NewProcessor creates a processor operating on inv.
func NewProcessor(inv *Inventory) *Processor {
	return &Processor{inventory: inv}
}

// Process applies tx and returns the disposal it realized, if any.
// BUY and UNKNOWN transactions never produce a disposal.
func (p *Processor) Process(ctx context.Context, tx txn.Transaction) (*Disposal, error) {
	handler := GetHandler(tx.Type)
	if handler == nil {
		return nil, nil
	}
	return handler.Handle(ctx, p.inventory, tx)
}

// Inventory returns the inventory the processor mutates.
func (p *Processor) Inventory() *Inventory {
	return p.inventory
}
