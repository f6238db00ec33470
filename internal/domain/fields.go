package domain

import (
	"strconv"
	"time"
)

func indexFields(id int64, u *User) map[string]string {
	f := make(map[string]string, 8)
	if id != 0 {
		f["id"] = strconv.FormatInt(id, 10)
	}
	if u != nil {
		if u.ID != 0 {
			f["user.id"] = strconv.FormatInt(u.ID, 10)
		}
		if u.Login != "" {
			f["user.login"] = u.Login
		}
	}
	return f
}

func putInt(f map[string]string, key string, v *int) {
	if v != nil {
		f[key] = formatInt(*v)
	}
}

func putTime(f map[string]string, key string, v *time.Time) {
	if v != nil {
		f[key] = v.UTC().Format(time.RFC3339Nano)
	}
}

func formatInt(v int) string { return strconv.Itoa(v) }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
