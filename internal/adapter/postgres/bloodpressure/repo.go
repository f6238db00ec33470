// Package bloodpressure implements the BloodPressure repository using PostgreSQL.
package bloodpressure

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

const entity = "bloodPressure"

var selectColumns = []string{
	"b.id", "b.timestamp", "b.systolic", "b.diastolic", "b.user_id", "u.login",
}

var sortColumns = map[string]string{
	"id":        "b.id",
	"timestamp": "b.timestamp",
	"systolic":  "b.systolic",
	"diastolic": "b.diastolic",
}

// Repo provides blood pressure persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new blood pressure repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func selectRows() sq.SelectBuilder {
	return postgres.Builder.
		Select(selectColumns...).
		From("blood_pressure b").
		LeftJoin("users u ON u.id = b.user_id")
}

// Insert stores a new row and returns it as persisted, owner login included.
func (r *Repo) Insert(ctx context.Context, b *domain.BloodPressure) (*domain.BloodPressure, error) {
	query, args, err := postgres.Builder.
		Insert("blood_pressure").
		SetMap(values(b)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert blood_pressure: %w", err)
	}

	var id int64
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return nil, postgres.MapError(err, entity, 0)
	}
	return r.FindByID(ctx, id)
}

// Replace overwrites every column of the row with b.ID.
// Returns domain.ErrNotFound if there is no such row.
func (r *Repo) Replace(ctx context.Context, b *domain.BloodPressure) (*domain.BloodPressure, error) {
	query, args, err := postgres.Builder.
		Update("blood_pressure").
		SetMap(values(b)).
		Where(sq.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update blood_pressure: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, b.ID)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%s %d: %w", entity, b.ID, domain.ErrNotFound)
	}
	return r.FindByID(ctx, b.ID)
}

// FindByID returns domain.ErrNotFound if the row does not exist.
func (r *Repo) FindByID(ctx context.Context, id int64) (*domain.BloodPressure, error) {
	query, args, err := selectRows().Where(sq.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select blood_pressure: %w", err)
	}
	p, err := scan(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return p, nil
}

// FindPage returns one page of rows and the total row count.
func (r *Repo) FindPage(ctx context.Context, page domain.PageRequest) (domain.Page[domain.BloodPressure], error) {
	total, err := r.Count(ctx)
	if err != nil {
		return domain.Page[domain.BloodPressure]{}, err
	}
	items, err := r.list(ctx, page)
	if err != nil {
		return domain.Page[domain.BloodPressure]{}, err
	}
	return domain.Page[domain.BloodPressure]{Items: items, Total: total, Request: page}, nil
}

// Delete removes the row. Deleting an absent id is not an error.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	query, args, err := postgres.Builder.Delete("blood_pressure").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete blood_pressure: %w", err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, entity, id)
	}
	return nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := postgres.Builder.Select("COUNT(*)").From("blood_pressure").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count blood_pressure: %w", err)
	}
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count blood_pressure: %w", err)
	}
	return n, nil
}

func (r *Repo) list(ctx context.Context, page domain.PageRequest) ([]domain.BloodPressure, error) {
	query, args, err := postgres.Page(selectRows(), page, sortColumns, "b.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list blood_pressure: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blood_pressure: %w", err)
	}
	defer rows.Close()

	result := make([]domain.BloodPressure, 0)
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blood_pressure: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list blood_pressure: %w", err)
	}
	return result, nil
}

func values(b *domain.BloodPressure) map[string]any {
	return map[string]any{
		"timestamp": b.Timestamp,
		"systolic":  b.Systolic,
		"diastolic": b.Diastolic,
		"user_id":   postgres.OwnerID(b.User),
	}
}

func scan(row pgx.Row) (*domain.BloodPressure, error) {
	var (
		b      domain.BloodPressure
		ts     *time.Time
		userID *int64
		login  *string
	)
	if err := row.Scan(&b.ID, &ts, &b.Systolic, &b.Diastolic, &userID, &login); err != nil {
		return nil, err
	}
	b.Timestamp = postgres.UTC(ts)
	b.User = postgres.Owner(userID, login)
	return &b, nil
}
