package sqlite

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/wafflemkr/points/internal/adapter/search"
	"github.com/wafflemkr/points/internal/adapter/search/querystring"
)

var (
	matchAll  = sq.Expr("1 = 1")
	matchNone = sq.Expr("1 = 0")
)

// not negates a condition. squirrel has no NOT combinator.
type not struct {
	cond sq.Sqlizer
}

func (n not) ToSql() (string, []any, error) {
	s, args, err := n.cond.ToSql()
	if err != nil {
		return "", nil, err
	}
	return "NOT (" + s + ")", args, nil
}

// compiler turns a parsed query into a condition on the document table.
// Every leaf selects document ids from the FTS table.
type compiler struct {
	mapping search.Mapping
	fts     string
}

func (c compiler) compile(n querystring.Node) (sq.Sqlizer, error) {
	switch n := n.(type) {
	case querystring.MatchAll:
		return matchAll, nil
	case querystring.Exists:
		if !c.mapping.HasField(n.Field) {
			return matchNone, nil
		}
		return sq.Expr(fmt.Sprintf("id IN (SELECT rowid FROM %s WHERE %s <> '')",
			quoteIdent(c.fts), quoteIdent(search.Column(n.Field)))), nil
	case querystring.Term:
		if len(n.Tokens) == 0 || (n.Field != "" && !c.mapping.HasField(n.Field)) {
			return matchNone, nil
		}
		return sq.Expr(fmt.Sprintf("id IN (SELECT rowid FROM %s WHERE %s MATCH ?)",
			quoteIdent(c.fts), quoteIdent(c.fts)), ftsExpr(n)), nil
	case querystring.Bool:
		return c.compileBool(n)
	default:
		return nil, fmt.Errorf("unsupported query node %T", n)
	}
}

func (c compiler) compileBool(b querystring.Bool) (sq.Sqlizer, error) {
	and := sq.And{}
	for _, m := range b.Must {
		s, err := c.compile(m)
		if err != nil {
			return nil, err
		}
		and = append(and, s)
	}
	if len(b.Must) == 0 && len(b.Should) > 0 {
		or := sq.Or{}
		for _, m := range b.Should {
			s, err := c.compile(m)
			if err != nil {
				return nil, err
			}
			or = append(or, s)
		}
		and = append(and, or)
	}
	for _, m := range b.MustNot {
		s, err := c.compile(m)
		if err != nil {
			return nil, err
		}
		and = append(and, not{cond: s})
	}
	if len(and) == 0 {
		return matchAll, nil
	}
	return and, nil
}

// ftsExpr renders a term as an FTS5 match expression, e.g.
// `user_login : "adm" *`. Tokens hold only letters and digits, so quoting
// them needs no escaping.
func ftsExpr(t querystring.Term) string {
	var b strings.Builder
	if t.Field != "" {
		b.WriteString(search.Column(t.Field))
		b.WriteString(" : ")
	}
	b.WriteByte('"')
	b.WriteString(strings.Join(t.Tokens, " "))
	b.WriteByte('"')
	if t.Prefix {
		b.WriteString(" *")
	}
	return b.String()
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
