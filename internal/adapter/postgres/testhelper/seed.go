package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wafflemkr/points/internal/domain"
)

// Seeded accounts created by the initial migration.
var (
	Admin = domain.User{ID: 3, Login: "admin"}
	User  = domain.User{ID: 4, Login: "user"}
)

// UniqueLogin returns a login that does not collide across parallel tests.
func UniqueLogin(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedUser inserts a fresh user and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	u := domain.User{Login: UniqueLogin("user")}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (login) VALUES ($1) RETURNING id`, u.Login,
	).Scan(&u.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return u
}
