package service

import (
	"context"
	"errors"

	"auction-management-api/internal/cache"
	"auction-management-api/internal/entity"
	"auction-management-api/internal/event"
	"auction-management-api/internal/repo"
	"auction-management-api/internal/repo/repo_errors"

	"github.com/shopspring/decimal"
)

type AuctionService struct {
	auctionRepo repo.Auction
	itemRepo    repo.Item
	bidRepo     repo.Bid
	highBid     *cache.HighBid
	events      *event.Publisher
}

func NewAuctionService(repos *repo.Repositories, highBid *cache.HighBid, events *event.Publisher) *AuctionService {
	return &AuctionService{
		auctionRepo: repos.Auction,
		itemRepo:    repos.Item,
		bidRepo:     repos.Bid,
		highBid:     highBid,
		events:      events,
	}
}

// OpenAuction makes the target item the single live auction. Any item that
// was live before silently reverts to listed, keeping its bid history.
func (s *AuctionService) OpenAuction(ctx context.Context, itemId string, principal entity.Principal) (*entity.ItemOutputModel, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	err := s.auctionRepo.OpenAuction(ctx, itemId)
	if err != nil {
		return nil, mapAuctionRepoError(err)
	}

	item, err := s.itemRepo.GetItemById(ctx, itemId)
	if err != nil {
		return nil, mapAuctionRepoError(err)
	}

	s.highBid.Forget(ctx, itemId)

	out := mapItem(item)
	s.events.AuctionOpened(out)

	return out, nil
}

// CloseAuction freezes the live item as sold. The winning bid is the highest
// accepted bid, or null when the item sold with no bid ever placed.
func (s *AuctionService) CloseAuction(ctx context.Context, itemId string, principal entity.Principal) (*entity.SoldResultOutputModel, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	err := s.auctionRepo.CloseAuction(ctx, itemId)
	if err != nil {
		return nil, mapAuctionRepoError(err)
	}

	item, err := s.itemRepo.GetItemById(ctx, itemId)
	if err != nil {
		return nil, mapAuctionRepoError(err)
	}

	var winning *entity.BidOutputModel
	highest, err := s.bidRepo.GetHighestBid(ctx, itemId)
	if err == nil {
		winning = mapBid(highest)
	} else if !errors.Is(err, repo_errors.ErrNotFound) {
		return nil, err
	}

	s.highBid.Forget(ctx, itemId)

	out := mapItem(item)
	s.events.AuctionClosed(out, winning)

	return &entity.SoldResultOutputModel{Item: *out, WinningBid: winning}, nil
}

// PlaceBid accepts the bid only if the amount strictly exceeds the committed
// high bid; the authoritative check happens inside the repository
// transaction. The cache lookup in front of it only short-circuits bids that
// already lost, after confirming against committed state.
func (s *AuctionService) PlaceBid(ctx context.Context, itemId string, principal entity.Principal, amount decimal.Decimal) (*entity.BidOutputModel, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if cached, ok := s.highBid.Get(ctx, itemId); ok && !amount.GreaterThan(cached) {
		// the cached value may be stale; accepted amounts only grow per
		// item, so a committed value at or above the bid proves it lost
		if highest, err := s.bidRepo.GetHighestBid(ctx, itemId); err == nil {
			s.highBid.Set(ctx, itemId, highest.Amount)
			if !amount.GreaterThan(highest.Amount) {
				return nil, &BidTooLowError{CurrentHighBid: highest.Amount}
			}
		}
	}

	bidId, err := s.auctionRepo.PlaceBid(ctx, itemId, principal.Id, amount)
	if err != nil {
		var tooLow *repo_errors.BidTooLowError
		if errors.As(err, &tooLow) {
			s.highBid.Set(ctx, itemId, tooLow.HighBid)
			return nil, &BidTooLowError{CurrentHighBid: tooLow.HighBid}
		}

		return nil, mapAuctionRepoError(err)
	}

	bid, err := s.bidRepo.GetBidById(ctx, bidId.String())
	if err != nil {
		return nil, err
	}

	s.highBid.Set(ctx, itemId, bid.Amount)

	out := mapBid(bid)
	s.events.BidAccepted(out)

	return out, nil
}

// GetCurrentAuction reads committed state directly; an empty result carries
// a nil item rather than an error.
func (s *AuctionService) GetCurrentAuction(ctx context.Context) (*entity.CurrentAuctionOutputModel, error) {
	item, err := s.auctionRepo.GetCurrentAuction(ctx)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return &entity.CurrentAuctionOutputModel{Item: nil}, nil
		}

		return nil, err
	}

	highBid := &entity.HighBidOutputModel{Amount: item.BasePrice.String()}
	highest, err := s.bidRepo.GetHighestBid(ctx, item.Id.String())
	if err == nil {
		highBid = &entity.HighBidOutputModel{
			BidderId: highest.BidderId.String(),
			Amount:   highest.Amount.String(),
		}
	} else if !errors.Is(err, repo_errors.ErrNotFound) {
		return nil, err
	}

	return &entity.CurrentAuctionOutputModel{
		Item:    mapItem(item),
		HighBid: highBid,
	}, nil
}

func mapAuctionRepoError(err error) error {
	switch {
	case errors.Is(err, repo_errors.ErrNotFound):
		return ErrItemNotFound
	case errors.Is(err, repo_errors.ErrInvalidTransition):
		return ErrInvalidTransition
	case errors.Is(err, repo_errors.ErrItemNotOpen):
		return ErrItemNotOpenForBidding
	case errors.Is(err, repo_errors.ErrSerialization):
		return ErrConflict
	}

	return err
}
