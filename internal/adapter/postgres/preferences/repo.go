// Package preferences implements the Preferences repository using PostgreSQL.
package preferences

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wafflemkr/points/internal/adapter/postgres"
	"github.com/wafflemkr/points/internal/domain"
)

const entity = "preferences"

var selectColumns = []string{
	"pr.id", "pr.weekly_goals", "pr.weight_unit", "pr.user_id", "u.login",
}

var sortColumns = map[string]string{
	"id":          "pr.id",
	"weeklyGoals": "pr.weekly_goals",
	"weightUnit":  "pr.weight_unit",
}

// Repo provides preferences persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new preferences repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func selectRows() sq.SelectBuilder {
	return postgres.Builder.
		Select(selectColumns...).
		From("preferences pr").
		LeftJoin("users u ON u.id = pr.user_id")
}

// Insert stores a new row and returns it as persisted, owner login included.
func (r *Repo) Insert(ctx context.Context, p *domain.Preferences) (*domain.Preferences, error) {
	query, args, err := postgres.Builder.
		Insert("preferences").
		SetMap(values(p)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert preferences: %w", err)
	}

	var id int64
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return nil, postgres.MapError(err, entity, 0)
	}
	return r.FindByID(ctx, id)
}

// Replace overwrites every column of the row with p.ID.
// Returns domain.ErrNotFound if there is no such row.
func (r *Repo) Replace(ctx context.Context, p *domain.Preferences) (*domain.Preferences, error) {
	query, args, err := postgres.Builder.
		Update("preferences").
		SetMap(values(p)).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update preferences: %w", err)
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
func (r *Repo) FindByID(ctx context.Context, id int64) (*domain.Preferences, error) {
	query, args, err := selectRows().Where(sq.Eq{"pr.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select preferences: %w", err)
	}
	p, err := scan(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return p, nil
}

// FindPage returns one page of rows and the total row count.
func (r *Repo) FindPage(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Preferences], error) {
	total, err := r.Count(ctx)
	if err != nil {
		return domain.Page[domain.Preferences]{}, err
	}
	items, err := r.list(ctx, page)
	if err != nil {
		return domain.Page[domain.Preferences]{}, err
	}
	return domain.Page[domain.Preferences]{Items: items, Total: total, Request: page}, nil
}

// Delete removes the row. Deleting an absent id is not an error.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	query, args, err := postgres.Builder.Delete("preferences").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete preferences: %w", err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, entity, id)
	}
	return nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := postgres.Builder.Select("COUNT(*)").From("preferences").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count preferences: %w", err)
	}
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count preferences: %w", err)
	}
	return n, nil
}

func (r *Repo) list(ctx context.Context, page domain.PageRequest) ([]domain.Preferences, error) {
	query, args, err := postgres.Page(selectRows(), page, sortColumns, "pr.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list preferences: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Preferences, 0)
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan preferences: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	return result, nil
}

func values(p *domain.Preferences) map[string]any {
	return map[string]any{
		"weekly_goals": p.WeeklyGoals,
		"weight_unit":  string(p.WeightUnit),
		"user_id":      postgres.OwnerID(p.User),
	}
}

func scan(row pgx.Row) (*domain.Preferences, error) {
	var (
		p      domain.Preferences
		unit   string
		userID *int64
		login  *string
	)
	if err := row.Scan(&p.ID, &p.WeeklyGoals, &unit, &userID, &login); err != nil {
		return nil, err
	}
	p.WeightUnit = domain.WeightUnit(unit)
	p.User = postgres.Owner(userID, login)
	return &p, nil
}
