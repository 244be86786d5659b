package repo

import (
	"context"

	"auction-management-api/internal/entity"
	"auction-management-api/internal/repo/pgdb"
	"auction-management-api/pkg/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Diagnostics interface {
	Ping() error
}

type Item interface {
	CreateItem(ctx context.Context, input *entity.CreateItemInput) (uuid.UUID, error)
	GetItemById(ctx context.Context, id string) (*entity.Item, error)
	GetActiveItems(ctx context.Context, pg *entity.PaginationInput) ([]entity.Item, error)
	GetSoldItems(ctx context.Context, pg *entity.PaginationInput) ([]entity.Item, error)
}

// Auction owns every mutation of item status and every bid append. Each
// method runs as a single transaction so that concurrent calls cannot
// interleave their read and write phases.
type Auction interface {
	OpenAuction(ctx context.Context, itemId string) error
	CloseAuction(ctx context.Context, itemId string) error
	PlaceBid(ctx context.Context, itemId string, bidderId uuid.UUID, amount decimal.Decimal) (uuid.UUID, error)
	GetCurrentAuction(ctx context.Context) (*entity.Item, error)
}

type Bid interface {
	GetBidById(ctx context.Context, id string) (*entity.Bid, error)
	GetHighestBid(ctx context.Context, itemId string) (*entity.Bid, error)
}

type Interest interface {
	MarkInterest(ctx context.Context, itemId string, userId uuid.UUID) (uuid.UUID, error)
	GetInterestById(ctx context.Context, id string) (*entity.Interest, error)
	GetInterestCount(ctx context.Context, itemId string) (int, error)
}

type Repositories struct {
	Diagnostics
	Item
	Auction
	Bid
	Interest
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Item:        pgdb.NewItemRepo(p),
		Auction:     pgdb.NewAuctionRepo(p),
		Bid:         pgdb.NewBidRepo(p),
		Interest:    pgdb.NewInterestRepo(p),
	}
}
