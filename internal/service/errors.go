package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrForbidden    = errors.New("caller doesn't have sufficient rights for this operation")

	ErrInvalidTransition     = errors.New("item status doesn't allow this transition")
	ErrItemNotOpenForBidding = errors.New("item not open for bidding")
	ErrInvalidAmount         = errors.New("amount must be a positive number")

	ErrInterestAlreadyMarked = errors.New("interest already marked")

	ErrConflict = errors.New("operation conflicted with a concurrent request, try again")
)

// BidTooLowError rejects a bid that does not strictly exceed the current
// high bid; CurrentHighBid is the committed floor the caller has to beat.
type BidTooLowError struct {
	CurrentHighBid decimal.Decimal
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid must be higher than current highest: %s", e.CurrentHighBid.String())
}
