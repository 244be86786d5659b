package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"auction-management-api/internal/entity"
	"auction-management-api/internal/repo/repo_errors"
	"auction-management-api/pkg/postgres"

	"github.com/google/uuid"
)

const bidColumns = "id, item_id, bidder_id, amount, created_at"

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

func (r *BidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getBidSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("id = ?", uuidForm).
		ToSql()

	return r.queryBid(ctx, getBidSql, args)
}

// GetHighestBid returns ErrNotFound when no bid has ever been accepted for
// the item.
func (r *BidRepo) GetHighestBid(ctx context.Context, itemId string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getHighestSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("item_id = ?", uuidForm).
		OrderBy("amount DESC").
		Limit(1).
		ToSql()

	return r.queryBid(ctx, getHighestSql, args)
}

func (r *BidRepo) queryBid(ctx context.Context, query string, args []interface{}) (*entity.Bid, error) {
	var bid entity.Bid
	var createdAt time.Time
	row := r.Database.QueryRowContext(ctx, query, args...)
	err := row.Scan(&bid.Id, &bid.ItemId, &bid.BidderId, &bid.Amount, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	bid.CreatedAt = createdAt.Format(time.RFC3339)

	return &bid, nil
}
