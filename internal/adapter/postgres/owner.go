package postgres

import (
	"time"

	"github.com/wafflemkr/points/internal/domain"
)

// OwnerID returns the user_id column value for an owner reference.
func OwnerID(u *domain.User) *int64 {
	if u == nil {
		return nil
	}
	id := u.ID
	return &id
}

// Owner rebuilds the owner reference from the joined user_id and login.
func Owner(id *int64, login *string) *domain.User {
	if id == nil {
		return nil
	}
	u := &domain.User{ID: *id}
	if login != nil {
		u.Login = *login
	}
	return u
}

// UTC normalises a scanned timestamp so that stored instants compare and
// serialise the same way everywhere.
func UTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
