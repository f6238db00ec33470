package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wafflemkr/points/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	if got := MapError(nil, "points", 1); got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapError_NoRows(t *testing.T) {
	t.Parallel()

	got := MapError(fmt.Errorf("scan row: %w", pgx.ErrNoRows), "points", 42)

	if !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("MapError(ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
	if want := "points 42: not found"; got.Error() != want {
		t.Errorf("MapError(ErrNoRows).Error() = %q, want %q", got.Error(), want)
	}
}

func TestMapError_PgCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pgErr   *pgconn.PgError
		wantErr error
		field   string
	}{
		{name: "unique_violation", pgErr: &pgconn.PgError{Code: "23505"}, wantErr: domain.ErrAlreadyExists},
		{name: "foreign_key_violation", pgErr: &pgconn.PgError{Code: "23503"}, wantErr: domain.ErrValidation, field: "userId"},
		{
			name:    "check_violation by constraint",
			pgErr:   &pgconn.PgError{Code: "23514", TableName: "preferences", ConstraintName: "preferences_weekly_goals_check"},
			wantErr: domain.ErrValidation,
			field:   "weeklyGoals",
		},
		{
			name:    "check_violation by column",
			pgErr:   &pgconn.PgError{Code: "23514", ColumnName: "weight_unit"},
			wantErr: domain.ErrValidation,
			field:   "weightUnit",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(fmt.Errorf("insert: %w", tt.pgErr), "preferences", 0)
			if !errors.Is(got, tt.wantErr) {
				t.Fatalf("MapError(%s) does not wrap %v: %v", tt.pgErr.Code, tt.wantErr, got)
			}
			if tt.field == "" {
				return
			}
			var ve *domain.ValidationError
			if !errors.As(got, &ve) {
				t.Fatalf("expected ValidationError, got %v", got)
			}
			if ve.Errors[0].Field != tt.field {
				t.Errorf("field = %q, want %q", ve.Errors[0].Field, tt.field)
			}
		})
	}
}

func TestMapError_ContextErrorsPassThrough(t *testing.T) {
	t.Parallel()

	for _, ctxErr := range []error{context.DeadlineExceeded, context.Canceled} {
		got := MapError(ctxErr, "weight", 1)
		if !errors.Is(got, ctxErr) {
			t.Errorf("MapError(%v) does not wrap the context error: %v", ctxErr, got)
		}
		if errors.Is(got, domain.ErrNotFound) {
			t.Errorf("MapError(%v) should not map to a domain error", ctxErr)
		}
	}
}

func TestMapError_UnknownPgError(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}
	got := MapError(pgErr, "weight", 1)

	var unwrapped *pgconn.PgError
	if !errors.As(got, &unwrapped) {
		t.Errorf("MapError(unknown PgError) does not wrap *pgconn.PgError: %v", got)
	}
	if errors.Is(got, domain.ErrNotFound) || errors.Is(got, domain.ErrAlreadyExists) || errors.Is(got, domain.ErrValidation) {
		t.Error("MapError(unknown PgError) should not map to a domain error")
	}
}

func TestCamel(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"weekly_goals": "weeklyGoals",
		"user_id":      "userId",
		"notes":        "notes",
		"":             "",
	}
	for in, want := range tests {
		if got := camel(in); got != want {
			t.Errorf("camel(%q) = %q, want %q", in, got, want)
		}
	}
}
