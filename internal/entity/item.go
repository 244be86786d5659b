package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Item struct {
	Id          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	BasePrice   decimal.Decimal `json:"basePrice" db:"base_price"`
	ImageUrl    string          `json:"imageUrl" db:"image_url"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   string          `json:"createdAt" db:"created_at"`
	SoldAt      string          `json:"soldAt" db:"sold_at"`
}

// service + repo input model
type CreateItemInput struct {
	Name        string          // given
	Description string          // given
	BasePrice   decimal.Decimal // given, must be positive
	ImageUrl    string          // given
	// Status is set to listed on creation
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// controller model
type ItemOutputModel struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BasePrice   string `json:"basePrice"`
	ImageUrl    string `json:"imageUrl"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	SoldAt      string `json:"soldAt,omitempty"`
}
