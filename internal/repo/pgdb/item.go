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

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const itemColumns = "id, name, description, base_price, image_url, status, created_at, sold_at"

type ItemRepo struct {
	*postgres.Postgres
}

func NewItemRepo(pgdb *postgres.Postgres) *ItemRepo {
	return &ItemRepo{pgdb}
}

func (r *ItemRepo) CreateItem(ctx context.Context, input *entity.CreateItemInput) (uuid.UUID, error) {
	createItemSql, args, _ := r.SqlBuilder.
		Insert("item").
		Columns("name", "description", "base_price", "image_url", "status").
		Values(input.Name, input.Description, input.BasePrice, input.ImageUrl, common.Listed).
		Suffix("RETURNING id").
		ToSql()

	var itemId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createItemSql, args...).Scan(&itemId)
	if err != nil {
		return uuid.Nil, err
	}

	return itemId, nil
}

func (r *ItemRepo) GetItemById(ctx context.Context, id string) (*entity.Item, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getItemSql, args, _ := r.SqlBuilder.
		Select(itemColumns).
		From("item").
		Where("id = ?", uuidForm).
		ToSql()

	row := r.Database.QueryRowContext(ctx, getItemSql, args...)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return item, nil
}

func (r *ItemRepo) GetActiveItems(ctx context.Context, pg *entity.PaginationInput) ([]entity.Item, error) {
	getActiveSql, args, _ := r.SqlBuilder.
		Select(itemColumns).
		From("item").
		Where(squirrel.Eq{"status": []string{common.Listed, common.Bidding}}).
		OrderBy("created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.queryItems(ctx, getActiveSql, args)
}

func (r *ItemRepo) GetSoldItems(ctx context.Context, pg *entity.PaginationInput) ([]entity.Item, error) {
	getSoldSql, args, _ := r.SqlBuilder.
		Select(itemColumns).
		From("item").
		Where("status = ?", common.Sold).
		OrderBy("sold_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.queryItems(ctx, getSoldSql, args)
}

func (r *ItemRepo) queryItems(ctx context.Context, query string, args []interface{}) ([]entity.Item, error) {
	rows, err := r.Database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return items, err
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return items, err
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*entity.Item, error) {
	var item entity.Item
	var createdAt time.Time
	var soldAt sql.NullTime
	err := row.Scan(&item.Id, &item.Name, &item.Description, &item.BasePrice,
		&item.ImageUrl, &item.Status, &createdAt, &soldAt)
	if err != nil {
		return nil, err
	}

	item.CreatedAt = createdAt.Format(time.RFC3339)
	if soldAt.Valid {
		item.SoldAt = soldAt.Time.Format(time.RFC3339)
	}

	return &item, nil
}
