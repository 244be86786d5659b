package service

import (
	"auction-management-api/internal/entity"
)

func mapItem(i *entity.Item) *entity.ItemOutputModel {
	return &entity.ItemOutputModel{
		Id:          i.Id.String(),
		Name:        i.Name,
		Description: i.Description,
		BasePrice:   i.BasePrice.String(),
		ImageUrl:    i.ImageUrl,
		Status:      i.Status,
		CreatedAt:   i.CreatedAt,
		SoldAt:      i.SoldAt,
	}
}

func mapItems(items []entity.Item) []entity.ItemOutputModel {
	s := make([]entity.ItemOutputModel, 0)
	for _, item := range items {
		s = append(s, *mapItem(&item))
	}

	return s
}

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Id:        b.Id.String(),
		ItemId:    b.ItemId.String(),
		BidderId:  b.BidderId.String(),
		Amount:    b.Amount.String(),
		CreatedAt: b.CreatedAt,
	}
}

func mapInterest(i *entity.Interest) *entity.InterestOutputModel {
	return &entity.InterestOutputModel{
		Id:        i.Id.String(),
		ItemId:    i.ItemId.String(),
		UserId:    i.UserId.String(),
		CreatedAt: i.CreatedAt,
	}
}
