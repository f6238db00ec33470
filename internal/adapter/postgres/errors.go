package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wafflemkr/points/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
func MapError(err error, entity string, id int64) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %d: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %d: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation; user_id is the only reference
			return fmt.Errorf("%s %d: %w", entity, id, domain.NewValidationError("userId", "unknown user"))
		case "23514": // check_violation
			return fmt.Errorf("%s %d: %w", entity, id, domain.NewValidationError(checkField(pgErr), "out of range"))
		}
	}

	return fmt.Errorf("%s %d: %w", entity, id, err)
}

// checkField guesses the offending field from the column or constraint name,
// e.g. preferences_weekly_goals_check becomes weeklyGoals.
func checkField(pgErr *pgconn.PgError) string {
	switch {
	case pgErr.ColumnName != "":
		return camel(pgErr.ColumnName)
	case pgErr.ConstraintName != "":
		name := pgErr.ConstraintName
		if pgErr.TableName != "" && len(name) > len(pgErr.TableName)+1 && name[:len(pgErr.TableName)+1] == pgErr.TableName+"_" {
			name = name[len(pgErr.TableName)+1:]
		}
		if n := len(name) - len("_check"); n > 0 && name[n:] == "_check" {
			name = name[:n]
		}
		return camel(name)
	default:
		return "entity"
	}
}

func camel(snake string) string {
	out := make([]byte, 0, len(snake))
	upper := false
	for i := 0; i < len(snake); i++ {
		c := snake[i]
		if c == '_' {
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}
