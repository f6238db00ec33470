package rest

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/wafflemkr/points/internal/domain"
)

// PageConfig bounds the page size clients may ask for.
type PageConfig struct {
	DefaultSize int
	MaxSize     int
}

// parsePage reads page, size and sort from the query string. Sizes above
// the maximum are clamped; sort keys must be sortable fields of the kind.
// Pages whose offset would overflow are rejected.
func parsePage(q url.Values, kind domain.Kind, cfg PageConfig) (domain.PageRequest, error) {
	req := domain.PageRequest{Page: 0, Size: cfg.DefaultSize}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return req, domain.NewValidationError("page", "must be a non-negative integer")
		}
		req.Page = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return req, domain.NewValidationError("size", "must be a positive integer")
		}
		req.Size = min(n, cfg.MaxSize)
	}
	// The end of the page, (page+1)*size, must fit in an int.
	if req.Page > math.MaxInt/req.Size-1 {
		return req, domain.NewValidationError("page", fmt.Sprintf("must be at most %d for size %d", math.MaxInt/req.Size-1, req.Size))
	}

	for _, raw := range q["sort"] {
		orders, err := parseSort(raw, kind)
		if err != nil {
			return req, err
		}
		req.Sort = append(req.Sort, orders...)
	}
	return req, nil
}

// parseSort reads "field[,field...][,asc|desc]".
func parseSort(raw string, kind domain.Kind) ([]domain.Order, error) {
	parts := strings.Split(raw, ",")
	desc := false
	switch strings.ToLower(parts[len(parts)-1]) {
	case "desc":
		desc = true
		parts = parts[:len(parts)-1]
	case "asc":
		parts = parts[:len(parts)-1]
	}

	orders := make([]domain.Order, 0, len(parts))
	for _, p := range parts {
		field := strings.TrimSpace(p)
		if field == "" {
			continue
		}
		if !kind.CanSortBy(field) {
			return nil, domain.NewValidationError("sort", fmt.Sprintf("cannot sort by %q", field))
		}
		orders = append(orders, domain.Order{Field: field, Desc: desc})
	}
	return orders, nil
}

// setPageHeaders writes X-Total-Count and an RFC 5988 Link header with
// next, prev, last and first relations built from the request URL.
func setPageHeaders[T any](w http.ResponseWriter, u *url.URL, p domain.Page[T]) {
	w.Header().Set("X-Total-Count", strconv.Itoa(p.Total))

	number := p.Request.Page
	size := p.Request.Size
	total := p.TotalPages()

	var links []string
	if number+1 < total {
		links = append(links, pageLink(u, number+1, size, "next"))
	}
	if number > 0 {
		links = append(links, pageLink(u, number-1, size, "prev"))
	}
	last := 0
	if total > 0 {
		last = total - 1
	}
	links = append(links, pageLink(u, last, size, "last"), pageLink(u, 0, size, "first"))

	w.Header().Set("Link", strings.Join(links, ","))
}

func pageLink(u *url.URL, page, size int, rel string) string {
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	target := url.URL{Path: u.Path, RawQuery: q.Encode()}
	return fmt.Sprintf("<%s>; rel=%q", target.String(), rel)
}
