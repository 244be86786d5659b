package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model. Bids are append-only: a row is never edited or deleted once
// accepted, and per item the accepted amounts are strictly increasing.
type Bid struct {
	Id        uuid.UUID       `json:"id" db:"id"`
	ItemId    uuid.UUID       `json:"itemId" db:"item_id"`
	BidderId  uuid.UUID       `json:"bidderId" db:"bidder_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt string          `json:"createdAt" db:"created_at"`
}

// controller model
type BidOutputModel struct {
	Id        string `json:"id"`
	ItemId    string `json:"itemId"`
	BidderId  string `json:"bidderId"`
	Amount    string `json:"amount"`
	CreatedAt string `json:"createdAt"`
}

// controller model: the price to beat on the live item. BidderId is empty
// when no bid has been accepted yet and Amount is the item's base price.
type HighBidOutputModel struct {
	BidderId string `json:"bidderId,omitempty"`
	Amount   string `json:"amount"`
}

// controller model for the current-auction query.
type CurrentAuctionOutputModel struct {
	Item    *ItemOutputModel    `json:"item"`
	HighBid *HighBidOutputModel `json:"highBid,omitempty"`
}

// controller model for sold listings; WinningBid is null for items sold
// with no bid ever placed.
type SoldResultOutputModel struct {
	Item       ItemOutputModel `json:"item"`
	WinningBid *BidOutputModel `json:"winningBid"`
}
