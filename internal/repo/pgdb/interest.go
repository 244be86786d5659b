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

type InterestRepo struct {
	*postgres.Postgres
}

func NewInterestRepo(pgdb *postgres.Postgres) *InterestRepo {
	return &InterestRepo{pgdb}
}

// MarkInterest relies on the (item_id, user_id) unique constraint to reject
// duplicates, surfaced as ErrAlreadyExists.
func (r *InterestRepo) MarkInterest(ctx context.Context, itemId string, userId uuid.UUID) (uuid.UUID, error) {
	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	markSql, args, _ := r.SqlBuilder.
		Insert("interest").
		Columns("item_id", "user_id").
		Values(uuidForm, userId).
		Suffix("RETURNING id").
		ToSql()

	var interestId uuid.UUID
	err = r.Database.QueryRowContext(ctx, markSql, args...).Scan(&interestId)
	if err != nil {
		return uuid.Nil, classifyPgError(err)
	}

	return interestId, nil
}

func (r *InterestRepo) GetInterestById(ctx context.Context, id string) (*entity.Interest, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getInterestSql, args, _ := r.SqlBuilder.
		Select("id, item_id, user_id, created_at").
		From("interest").
		Where("id = ?", uuidForm).
		ToSql()

	var interest entity.Interest
	var createdAt time.Time
	row := r.Database.QueryRowContext(ctx, getInterestSql, args...)
	err = row.Scan(&interest.Id, &interest.ItemId, &interest.UserId, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	interest.CreatedAt = createdAt.Format(time.RFC3339)

	return &interest, nil
}

func (r *InterestRepo) GetInterestCount(ctx context.Context, itemId string) (int, error) {
	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return 0, repo_errors.ErrNotFound
	}

	countSql, args, _ := r.SqlBuilder.
		Select("count(*)").
		From("interest").
		Where("item_id = ?", uuidForm).
		ToSql()

	var count int
	if err := r.Database.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
