// Package mapper translates between storage-form entities and transfer-form
// DTOs. Every function is total: nil in gives nil out.
package mapper

import "github.com/wafflemkr/points/internal/domain"

// UserFromID returns an owner shell carrying only the id.
func UserFromID(id *int64) *domain.User {
	if id == nil {
		return nil
	}
	return &domain.User{ID: *id}
}

func ownerID(u *domain.User) *int64 {
	if u == nil {
		return nil
	}
	id := u.ID
	return &id
}

func ownerLogin(u *domain.User) string {
	if u == nil {
		return ""
	}
	return u.Login
}

func idPtr(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func idValue(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

func mapSlice[E, D any](in []E, fn func(*E) *D) []D {
	if in == nil {
		return nil
	}
	out := make([]D, 0, len(in))
	for i := range in {
		if d := fn(&in[i]); d != nil {
			out = append(out, *d)
		}
	}
	return out
}
