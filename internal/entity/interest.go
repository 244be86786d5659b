package entity

import (
	"github.com/google/uuid"
)

// db model; unique per (item, user) pair
type Interest struct {
	Id        uuid.UUID `json:"id" db:"id"`
	ItemId    uuid.UUID `json:"itemId" db:"item_id"`
	UserId    uuid.UUID `json:"userId" db:"user_id"`
	CreatedAt string    `json:"createdAt" db:"created_at"`
}

// controller model
type InterestOutputModel struct {
	Id        string `json:"id"`
	ItemId    string `json:"itemId"`
	UserId    string `json:"userId"`
	CreatedAt string `json:"createdAt"`
}

// controller model
type InterestCountOutputModel struct {
	ItemId        string `json:"itemId"`
	InterestCount int    `json:"interestCount"`
}
