package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"auction-management-api/internal/common"
	"auction-management-api/internal/entity"
	"auction-management-api/internal/repo/repo_errors"
	"auction-management-api/pkg/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// liveAuctionLockId keys the transaction-scoped advisory lock serializing
// open/close against each other, so the two-part open (revert previous live
// item, activate target) can never leave two items in bidding status.
const liveAuctionLockId = 47001

type AuctionRepo struct {
	*postgres.Postgres
}

func NewAuctionRepo(pgdb *postgres.Postgres) *AuctionRepo {
	return &AuctionRepo{pgdb}
}

func (r *AuctionRepo) OpenAuction(ctx context.Context, itemId string) error {
	err := r.openAuctionTx(ctx, itemId)
	if errors.Is(err, repo_errors.ErrSerialization) {
		// one immediate retry before surfacing the conflict
		err = r.openAuctionTx(ctx, itemId)
	}

	return err
}

func (r *AuctionRepo) openAuctionTx(ctx context.Context, itemId string) error {
	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return classifyPgError(err)
	}

	if _, err = tx.ExecContext(ctx, "select pg_advisory_xact_lock($1)", liveAuctionLockId); err != nil {
		return rollback(tx, err)
	}

	status, err := r.lockItemRow(ctx, tx, uuidForm)
	if err != nil {
		return rollback(tx, err)
	}
	if status != common.Listed {
		// sold items never re-enter bidding; opening the live item again is
		// rejected as well
		return rollback(tx, repo_errors.ErrInvalidTransition)
	}

	revertSql, args, _ := r.SqlBuilder.
		Update("item").
		Set("status", common.Listed).
		Where("status = ?", common.Bidding).
		RunWith(tx).
		ToSql()

	if _, err = tx.ExecContext(ctx, revertSql, args...); err != nil {
		return rollback(tx, err)
	}

	activateSql, args, _ := r.SqlBuilder.
		Update("item").
		Set("status", common.Bidding).
		Where("id = ?", uuidForm).
		RunWith(tx).
		ToSql()

	if _, err = tx.ExecContext(ctx, activateSql, args...); err != nil {
		return rollback(tx, err)
	}

	if err = tx.Commit(); err != nil {
		return classifyPgError(err)
	}

	return nil
}

func (r *AuctionRepo) CloseAuction(ctx context.Context, itemId string) error {
	err := r.closeAuctionTx(ctx, itemId)
	if errors.Is(err, repo_errors.ErrSerialization) {
		err = r.closeAuctionTx(ctx, itemId)
	}

	return err
}

func (r *AuctionRepo) closeAuctionTx(ctx context.Context, itemId string) error {
	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return classifyPgError(err)
	}

	if _, err = tx.ExecContext(ctx, "select pg_advisory_xact_lock($1)", liveAuctionLockId); err != nil {
		return rollback(tx, err)
	}

	status, err := r.lockItemRow(ctx, tx, uuidForm)
	if err != nil {
		return rollback(tx, err)
	}
	if status != common.Bidding {
		return rollback(tx, repo_errors.ErrInvalidTransition)
	}

	closeSql, args, _ := r.SqlBuilder.
		Update("item").
		Set("status", common.Sold).
		Set("sold_at", time.Now().UTC()).
		Where("id = ?", uuidForm).
		RunWith(tx).
		ToSql()

	if _, err = tx.ExecContext(ctx, closeSql, args...); err != nil {
		return rollback(tx, err)
	}

	if err = tx.Commit(); err != nil {
		return classifyPgError(err)
	}

	return nil
}

// PlaceBid is the conditional append: the item row lock spans the high-bid
// read, the comparison and the insert, so two concurrent bids on the same
// item can never both pass the comparison against the same stale value.
func (r *AuctionRepo) PlaceBid(ctx context.Context, itemId string, bidderId uuid.UUID, amount decimal.Decimal) (uuid.UUID, error) {
	bidId, err := r.placeBidTx(ctx, itemId, bidderId, amount)
	if errors.Is(err, repo_errors.ErrSerialization) {
		bidId, err = r.placeBidTx(ctx, itemId, bidderId, amount)
	}

	return bidId, err
}

func (r *AuctionRepo) placeBidTx(ctx context.Context, itemId string, bidderId uuid.UUID, amount decimal.Decimal) (uuid.UUID, error) {
	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, classifyPgError(err)
	}

	lockSql, args, _ := r.SqlBuilder.
		Select("status", "base_price").
		From("item").
		Where("id = ?", uuidForm).
		Suffix("for update").
		RunWith(tx).
		ToSql()

	var status string
	var basePrice decimal.Decimal
	err = tx.QueryRowContext(ctx, lockSql, args...).Scan(&status, &basePrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, rollback(tx, repo_errors.ErrNotFound)
		}

		return uuid.Nil, rollback(tx, err)
	}

	if status != common.Bidding {
		return uuid.Nil, rollback(tx, repo_errors.ErrItemNotOpen)
	}

	highSql, args, _ := r.SqlBuilder.
		Select("max(amount)").
		From("bid").
		Where("item_id = ?", uuidForm).
		RunWith(tx).
		ToSql()

	var maxAmount decimal.NullDecimal
	if err = tx.QueryRowContext(ctx, highSql, args...).Scan(&maxAmount); err != nil {
		return uuid.Nil, rollback(tx, err)
	}

	highBid := basePrice
	if maxAmount.Valid {
		highBid = maxAmount.Decimal
	}

	if !amount.GreaterThan(highBid) {
		return uuid.Nil, rollback(tx, &repo_errors.BidTooLowError{HighBid: highBid})
	}

	insertSql, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("item_id", "bidder_id", "amount").
		Values(uuidForm, bidderId, amount).
		Suffix("RETURNING id").
		RunWith(tx).
		ToSql()

	var bidId uuid.UUID
	if err = tx.QueryRowContext(ctx, insertSql, args...).Scan(&bidId); err != nil {
		return uuid.Nil, rollback(tx, err)
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, classifyPgError(err)
	}

	return bidId, nil
}

func (r *AuctionRepo) GetCurrentAuction(ctx context.Context) (*entity.Item, error) {
	getLiveSql, args, _ := r.SqlBuilder.
		Select(itemColumns).
		From("item").
		Where("status = ?", common.Bidding).
		ToSql()

	row := r.Database.QueryRowContext(ctx, getLiveSql, args...)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return item, nil
}

func (r *AuctionRepo) lockItemRow(ctx context.Context, tx *sql.Tx, itemId uuid.UUID) (string, error) {
	lockSql, args, _ := r.SqlBuilder.
		Select("status").
		From("item").
		Where("id = ?", itemId).
		Suffix("for update").
		RunWith(tx).
		ToSql()

	var status string
	err := tx.QueryRowContext(ctx, lockSql, args...).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repo_errors.ErrNotFound
		}

		return "", err
	}

	return status, nil
}

func rollback(tx *sql.Tx, err error) error {
	if e := tx.Rollback(); e != nil {
		return e
	}

	return classifyPgError(err)
}
