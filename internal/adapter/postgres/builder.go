package postgres

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/wafflemkr/points/internal/domain"
)

// Builder is the squirrel statement builder for PostgreSQL placeholders.
var Builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Page applies the sort keys and window of page to b. columns maps API field
// names to SQL expressions; unknown fields are skipped. idColumn breaks ties
// so that pages are stable.
func Page(b sq.SelectBuilder, page domain.PageRequest, columns map[string]string, idColumn string) sq.SelectBuilder {
	idDir := "ASC"
	for _, o := range page.Sort {
		col, ok := columns[o.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		if col == idColumn {
			idDir = dir
			continue
		}
		b = b.OrderBy(col + " " + dir + " NULLS LAST")
	}
	b = b.OrderBy(idColumn + " " + idDir)

	if page.Unpaged {
		return b
	}
	return b.Limit(uint64(page.Size)).Offset(uint64(page.Offset()))
}
