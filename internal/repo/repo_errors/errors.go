package repo_errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrItemNotOpen       = errors.New("item is not open for bidding")

	// ErrSerialization marks a transaction that could not serialize and may
	// be retried.
	ErrSerialization = errors.New("transaction serialization failure")
)

// BidTooLowError is returned by the conditional append when the submitted
// amount does not strictly exceed the current high bid. HighBid is the
// committed value the bid failed to beat.
type BidTooLowError struct {
	HighBid decimal.Decimal
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid must be higher than current highest: %s", e.HighBid.String())
}
