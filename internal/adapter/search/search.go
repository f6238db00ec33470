// Package search defines the contract shared by the search index backends.
// The index is a secondary, eventually consistent copy of the entity store:
// it holds the last persisted storage form of every record and answers
// free-text queries over it.
package search

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/wafflemkr/points/internal/adapter/search/querystring"
	"github.com/wafflemkr/points/internal/domain"
)

// Document is a record that can be mirrored into an index.
type Document interface {
	Identity() int64
	IndexFields() map[string]string
}

// Mapping describes how one kind is laid out in an index.
type Mapping struct {
	Index    string
	Fields   []string
	Sortable []string
	// MaxResults caps unpaged searches. Zero means no cap.
	MaxResults int
}

// MappingFor derives the index mapping of a kind.
func MappingFor(k domain.Kind) Mapping {
	return Mapping{Index: k.Index, Fields: k.Fields, Sortable: k.Sortable}
}

func (m Mapping) HasField(name string) bool {
	for _, f := range m.Fields {
		if f == name {
			return true
		}
	}
	return false
}

func (m Mapping) CanSortBy(name string) bool {
	for _, f := range m.Sortable {
		if f == name {
			return true
		}
	}
	return false
}

// Column returns the storage column name of a field: "user.login" becomes
// "user_login".
func Column(field string) string {
	return strings.ReplaceAll(field, ".", "_")
}

// ParseQuery parses q and reports syntax errors as a validation error on
// the query parameter.
func ParseQuery(q string) (querystring.Node, error) {
	n, err := querystring.Parse(q)
	if err != nil {
		return nil, domain.NewValidationError("query", err.Error())
	}
	return n, nil
}

// Limit returns the number of rows a page request reads, or zero for no
// limit.
func (m Mapping) Limit(page domain.PageRequest) int {
	if page.Unpaged {
		return m.MaxResults
	}
	return page.Size
}

// Validate checks that an index name is usable as an SQL identifier prefix.
func (m Mapping) Validate() error {
	if m.Index == "" {
		return fmt.Errorf("search mapping: empty index name")
	}
	for _, r := range m.Index {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_') {
			return fmt.Errorf("search mapping: invalid index name %q", m.Index)
		}
	}
	if len(m.Fields) == 0 {
		return fmt.Errorf("search mapping %s: no fields", m.Index)
	}
	return nil
}

// Orders keeps the sortable keys of a page request and appends id as the
// final key, ascending unless the request sorts id descending.
func (m Mapping) Orders(keys []domain.Order) []domain.Order {
	out := make([]domain.Order, 0, len(keys)+1)
	idDesc := false
	for _, o := range keys {
		switch {
		case o.Field == "id":
			idDesc = o.Desc
		case m.CanSortBy(o.Field):
			out = append(out, o)
		}
	}
	return append(out, domain.Order{Field: "id", Desc: idDesc})
}

// SortableTime is the layout of timestamps inside sort keys. Unlike
// RFC3339Nano it never trims trailing zeros, so keys compare bytewise.
const SortableTime = "2006-01-02T15:04:05.000000000Z07:00"

// SortKey encodes a field value so that bytewise order of keys is the order
// of values: numbers by value, then timestamps by instant, then other text.
func SortKey(v string) string {
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		if f == 0 {
			f = 0 // -0
		}
		b := math.Float64bits(f)
		if b&(1<<63) != 0 {
			b = ^b
		} else {
			b |= 1 << 63
		}
		return fmt.Sprintf("a%016x", b)
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return "b" + t.UTC().Format(SortableTime)
	}
	return "c" + v
}
