package service

import (
	"context"
	"errors"

	"auction-management-api/internal/entity"
	"auction-management-api/internal/repo"
	"auction-management-api/internal/repo/repo_errors"
)

type CatalogService struct {
	itemRepo repo.Item
	bidRepo  repo.Bid
}

func NewCatalogService(repos *repo.Repositories) *CatalogService {
	return &CatalogService{
		itemRepo: repos.Item,
		bidRepo:  repos.Bid,
	}
}

func (s *CatalogService) CreateItem(ctx context.Context, principal entity.Principal, input *entity.CreateItemInput) (*entity.ItemOutputModel, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	if !input.BasePrice.IsPositive() {
		return nil, ErrInvalidAmount
	}

	id, err := s.itemRepo.CreateItem(ctx, input)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetItemById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapItem(item), nil
}

func (s *CatalogService) GetActiveItems(ctx context.Context, pg *entity.PaginationInput) ([]entity.ItemOutputModel, error) {
	items, err := s.itemRepo.GetActiveItems(ctx, pg)
	if err != nil {
		return nil, err
	}

	return mapItems(items), nil
}

// GetSoldResults pairs each sold item (newest sale first) with its winning
// bid; WinningBid stays null for items that sold with zero bids.
func (s *CatalogService) GetSoldResults(ctx context.Context, principal entity.Principal, pg *entity.PaginationInput) ([]entity.SoldResultOutputModel, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	items, err := s.itemRepo.GetSoldItems(ctx, pg)
	if err != nil {
		return nil, err
	}

	results := make([]entity.SoldResultOutputModel, 0)
	for i := range items {
		result := entity.SoldResultOutputModel{Item: *mapItem(&items[i])}

		highest, err := s.bidRepo.GetHighestBid(ctx, items[i].Id.String())
		if err == nil {
			result.WinningBid = mapBid(highest)
		} else if !errors.Is(err, repo_errors.ErrNotFound) {
			return nil, err
		}

		results = append(results, result)
	}

	return results, nil
}
