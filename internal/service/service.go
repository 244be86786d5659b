package service

import (
	"context"

	"auction-management-api/internal/cache"
	"auction-management-api/internal/entity"
	"auction-management-api/internal/event"
	"auction-management-api/internal/repo"

	"github.com/shopspring/decimal"
)

type Diagnostics interface {
	Ping() error
}

type Catalog interface {
	CreateItem(ctx context.Context, principal entity.Principal, input *entity.CreateItemInput) (*entity.ItemOutputModel, error)
	GetActiveItems(ctx context.Context, pg *entity.PaginationInput) ([]entity.ItemOutputModel, error)
	GetSoldResults(ctx context.Context, principal entity.Principal, pg *entity.PaginationInput) ([]entity.SoldResultOutputModel, error)
}

type Auction interface {
	OpenAuction(ctx context.Context, itemId string, principal entity.Principal) (*entity.ItemOutputModel, error)
	CloseAuction(ctx context.Context, itemId string, principal entity.Principal) (*entity.SoldResultOutputModel, error)
	PlaceBid(ctx context.Context, itemId string, principal entity.Principal, amount decimal.Decimal) (*entity.BidOutputModel, error)
	GetCurrentAuction(ctx context.Context) (*entity.CurrentAuctionOutputModel, error)
}

type Interest interface {
	MarkInterest(ctx context.Context, itemId string, principal entity.Principal) (*entity.InterestOutputModel, error)
	GetInterestCount(ctx context.Context, itemId string, principal entity.Principal) (*entity.InterestCountOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	Catalog     Catalog
	Auction     Auction
	Interest    Interest
}

func NewServices(repos *repo.Repositories, highBid *cache.HighBid, events *event.Publisher) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Catalog:     NewCatalogService(repos),
		Auction:     NewAuctionService(repos, highBid, events),
		Interest:    NewInterestService(repos),
	}
}
