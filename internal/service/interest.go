package service

import (
	"context"
	"errors"

	"auction-management-api/internal/entity"
	"auction-management-api/internal/repo"
	"auction-management-api/internal/repo/repo_errors"
)

type InterestService struct {
	interestRepo repo.Interest
	itemRepo     repo.Item
}

func NewInterestService(repos *repo.Repositories) *InterestService {
	return &InterestService{
		interestRepo: repos.Interest,
		itemRepo:     repos.Item,
	}
}

func (s *InterestService) MarkInterest(ctx context.Context, itemId string, principal entity.Principal) (*entity.InterestOutputModel, error) {
	if _, err := s.itemRepo.GetItemById(ctx, itemId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrItemNotFound
		}

		return nil, err
	}

	id, err := s.interestRepo.MarkInterest(ctx, itemId, principal.Id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrAlreadyExists) {
			return nil, ErrInterestAlreadyMarked
		}

		return nil, err
	}

	interest, err := s.interestRepo.GetInterestById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapInterest(interest), nil
}

func (s *InterestService) GetInterestCount(ctx context.Context, itemId string, principal entity.Principal) (*entity.InterestCountOutputModel, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	if _, err := s.itemRepo.GetItemById(ctx, itemId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrItemNotFound
		}

		return nil, err
	}

	count, err := s.interestRepo.GetInterestCount(ctx, itemId)
	if err != nil {
		return nil, err
	}

	return &entity.InterestCountOutputModel{ItemId: itemId, InterestCount: count}, nil
}
