package domain

// User is the owner of health records. Only the identity and login are
// needed here; account management lives outside this service.
type User struct {
	ID    int64  `json:"id"`
	Login string `json:"login,omitempty"`
}

func (u User) Identity() int64 { return u.ID }
