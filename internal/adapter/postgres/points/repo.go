// Package points implements the Points repository using PostgreSQL.
package points

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

const entity = "points"

var selectColumns = []string{
	"p.id", "p.date", "p.exercise", "p.meals", "p.alcohol", "p.notes", "p.user_id", "u.login",
}

var sortColumns = map[string]string{
	"id":       "p.id",
	"date":     "p.date",
	"exercise": "p.exercise",
	"meals":    "p.meals",
	"alcohol":  "p.alcohol",
	"notes":    "p.notes",
}

// Repo provides points persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new points repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func selectPoints() sq.SelectBuilder {
	return postgres.Builder.
		Select(selectColumns...).
		From("points p").
		LeftJoin("users u ON u.id = p.user_id")
}

// Insert stores a new row and returns it as persisted, owner login included.
func (r *Repo) Insert(ctx context.Context, p *domain.Points) (*domain.Points, error) {
	query, args, err := postgres.Builder.
		Insert("points").
		SetMap(values(p)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert points: %w", err)
	}

	var id int64
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return nil, postgres.MapError(err, entity, 0)
	}
	return r.FindByID(ctx, id)
}

// Replace overwrites every column of the row with p.ID.
// Returns domain.ErrNotFound if there is no such row.
func (r *Repo) Replace(ctx context.Context, p *domain.Points) (*domain.Points, error) {
	query, args, err := postgres.Builder.
		Update("points").
		SetMap(values(p)).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update points: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, p.ID)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%s %d: %w", entity, p.ID, domain.ErrNotFound)
	}
	return r.FindByID(ctx, p.ID)
}

// FindByID returns domain.ErrNotFound if the row does not exist.
func (r *Repo) FindByID(ctx context.Context, id int64) (*domain.Points, error) {
	query, args, err := selectPoints().Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select points: %w", err)
	}
	p, err := scan(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return p, nil
}

// FindPage returns one page of rows and the total row count.
func (r *Repo) FindPage(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Points], error) {
	total, err := r.Count(ctx)
	if err != nil {
		return domain.Page[domain.Points]{}, err
	}
	items, err := r.list(ctx, page)
	if err != nil {
		return domain.Page[domain.Points]{}, err
	}
	return domain.Page[domain.Points]{Items: items, Total: total, Request: page}, nil
}

// Delete removes the row. Deleting an absent id is not an error.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	query, args, err := postgres.Builder.Delete("points").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete points: %w", err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, entity, id)
	}
	return nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := postgres.Builder.Select("COUNT(*)").From("points").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count points: %w", err)
	}
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count points: %w", err)
	}
	return n, nil
}

func (r *Repo) list(ctx context.Context, page domain.PageRequest) ([]domain.Points, error) {
	query, args, err := postgres.Page(selectPoints(), page, sortColumns, "p.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list points: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Points, 0)
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan points: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	return result, nil
}

func values(p *domain.Points) map[string]any {
	var date *time.Time
	if p.Date != nil {
		t := p.Date.Time()
		date = &t
	}
	return map[string]any{
		"date":     date,
		"exercise": p.Exercise,
		"meals":    p.Meals,
		"alcohol":  p.Alcohol,
		"notes":    p.Notes,
		"user_id":  postgres.OwnerID(p.User),
	}
}

func scan(row pgx.Row) (*domain.Points, error) {
	var (
		p      domain.Points
		date   *time.Time
		userID *int64
		login  *string
	)
	if err := row.Scan(&p.ID, &date, &p.Exercise, &p.Meals, &p.Alcohol, &p.Notes, &userID, &login); err != nil {
		return nil, err
	}
	if date != nil {
		d := domain.DateOf(*date)
		p.Date = &d
	}
	p.User = postgres.Owner(userID, login)
	return &p, nil
}
