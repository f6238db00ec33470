// Package weight implements the Weight repository using PostgreSQL.
package weight

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wafflemkr/points/internal/adapter/postgres"
	"github.com/wafflemkr/points/internal/domain"
)

const entity = "weight"

var selectColumns = []string{
	"w.id", "w.timestamp", "w.weight", "w.user_id", "u.login",
}

var sortColumns = map[string]string{
	"id":        "w.id",
	"timestamp": "w.timestamp",
	"weight":    "w.weight",
}

// Repo provides weight persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new weight repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func selectRows() sq.SelectBuilder {
	return postgres.Builder.
		Select(selectColumns...).
		From("weight w").
		LeftJoin("users u ON u.id = w.user_id")
}

// Insert stores a new row and returns it as persisted, owner login included.
func (r *Repo) Insert(ctx context.Context, w *domain.Weight) (*domain.Weight, error) {
	query, args, err := postgres.Builder.
		Insert("weight").
		SetMap(values(w)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert weight: %w", err)
	}

	var id int64
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return nil, postgres.MapError(err, entity, 0)
	}
	return r.FindByID(ctx, id)
}

// Replace overwrites every column of the row with w.ID.
// Returns domain.ErrNotFound if there is no such row.
func (r *Repo) Replace(ctx context.Context, w *domain.Weight) (*domain.Weight, error) {
	query, args, err := postgres.Builder.
		Update("weight").
		SetMap(values(w)).
		Where(sq.Eq{"id": w.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update weight: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, w.ID)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%s %d: %w", entity, w.ID, domain.ErrNotFound)
	}
	return r.FindByID(ctx, w.ID)
}

// FindByID returns domain.ErrNotFound if the row does not exist.
func (r *Repo) FindByID(ctx context.Context, id int64) (*domain.Weight, error) {
	query, args, err := selectRows().Where(sq.Eq{"w.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select weight: %w", err)
	}
	p, err := scan(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return p, nil
}

// FindPage returns one page of rows and the total row count.
func (r *Repo) FindPage(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Weight], error) {
	total, err := r.Count(ctx)
	if err != nil {
		return domain.Page[domain.Weight]{}, err
	}
	items, err := r.list(ctx, page)
	if err != nil {
		return domain.Page[domain.Weight]{}, err
	}
	return domain.Page[domain.Weight]{Items: items, Total: total, Request: page}, nil
}

// Delete removes the row. Deleting an absent id is not an error.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	query, args, err := postgres.Builder.Delete("weight").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete weight: %w", err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, entity, id)
	}
	return nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := postgres.Builder.Select("COUNT(*)").From("weight").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count weight: %w", err)
	}
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count weight: %w", err)
	}
	return n, nil
}

func (r *Repo) list(ctx context.Context, page domain.PageRequest) ([]domain.Weight, error) {
	query, args, err := postgres.Page(selectRows(), page, sortColumns, "w.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list weight: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list weight: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Weight, 0)
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan weight: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list weight: %w", err)
	}
	return result, nil
}

func values(w *domain.Weight) map[string]any {
	return map[string]any{
		"timestamp": w.Timestamp,
		"weight":    w.Weight,
		"user_id":   postgres.OwnerID(w.User),
	}
}

func scan(row pgx.Row) (*domain.Weight, error) {
	var (
		w      domain.Weight
		ts     *time.Time
		userID *int64
		login  *string
	)
	if err := row.Scan(&w.ID, &ts, &w.Weight, &userID, &login); err != nil {
		return nil, err
	}
	w.Timestamp = postgres.UTC(ts)
	w.User = postgres.Owner(userID, login)
	return &w, nil
}
