package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/wafflemkr/points/internal/adapter/search"
	"github.com/wafflemkr/points/internal/domain"
)

// Index mirrors one kind into a document table holding the JSON storage form
// and one search.SortKey column per sortable field, and an FTS5 table holding
// one column per searchable field. The FTS rowid is the document id.
type Index[E search.Document] struct {
	db       *sql.DB
	mapping  search.Mapping
	docs     string
	fts      string
	columns  []string
	sortable []string
}

// New creates the index tables if they do not exist.
func New[E search.Document](ctx context.Context, db *sql.DB, m search.Mapping) (*Index[E], error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	idx := &Index[E]{
		db:      db,
		mapping: m,
		docs:    m.Index + "_docs",
		fts:     m.Index + "_fts",
	}
	for _, f := range m.Fields {
		idx.columns = append(idx.columns, search.Column(f))
	}
	for _, f := range m.Sortable {
		if f != "id" {
			idx.sortable = append(idx.sortable, f)
		}
	}
	if err := idx.createTables(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

func (x *Index[E]) createTables(ctx context.Context) error {
	quoted := make([]string, len(x.columns))
	for i, c := range x.columns {
		quoted[i] = quoteIdent(c)
	}
	docCols := []string{"id INTEGER PRIMARY KEY", "body TEXT NOT NULL"}
	for _, f := range x.sortable {
		docCols = append(docCols, quoteIdent(sortColumn(f))+" TEXT")
	}
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s)`, quoteIdent(x.docs), strings.Join(docCols, ", ")),
		fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS %s USING fts5(%s, tokenize = 'unicode61 remove_diacritics 0')`,
			quoteIdent(x.fts), strings.Join(quoted, ", ")),
	}
	for _, s := range stmts {
		if _, err := x.db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("create index %s: %w", x.mapping.Index, err)
		}
	}
	return nil
}

// Save stores the current state of e, replacing any previous copy.
func (x *Index[E]) Save(ctx context.Context, e *E) (retErr error) {
	doc := *e
	id := doc.Identity()
	if id == 0 {
		return fmt.Errorf("index %s: save document without id", x.mapping.Index)
	}
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("index %s: encode %d: %w", x.mapping.Index, id, err)
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("index %s: begin: %w", x.mapping.Index, err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	fields := doc.IndexFields()
	values := make([]any, 0, len(x.columns)+1)
	values = append(values, id)
	for _, f := range x.mapping.Fields {
		values = append(values, fields[f])
	}

	docCols := []string{"id", "body"}
	docValues := []any{id, string(body)}
	for _, f := range x.sortable {
		docCols = append(docCols, quoteIdent(sortColumn(f)))
		if v := fields[f]; v != "" {
			docValues = append(docValues, search.SortKey(v))
		} else {
			docValues = append(docValues, nil)
		}
	}

	queries := []sq.Sqlizer{
		sq.Replace(quoteIdent(x.docs)).Columns(docCols...).Values(docValues...),
		sq.Delete(quoteIdent(x.fts)).Where(sq.Eq{"rowid": id}),
		sq.Insert(quoteIdent(x.fts)).Columns(append([]string{"rowid"}, quoteAll(x.columns)...)...).Values(values...),
	}
	for _, q := range queries {
		if err := execSqlizer(ctx, tx, q); err != nil {
			return fmt.Errorf("index %s: save %d: %w", x.mapping.Index, id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("index %s: commit: %w", x.mapping.Index, err)
	}
	return nil
}

// Delete removes the document with the given id. Deleting an absent id is
// not an error.
func (x *Index[E]) Delete(ctx context.Context, id int64) (retErr error) {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("index %s: begin: %w", x.mapping.Index, err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, q := range []sq.Sqlizer{
		sq.Delete(quoteIdent(x.docs)).Where(sq.Eq{"id": id}),
		sq.Delete(quoteIdent(x.fts)).Where(sq.Eq{"rowid": id}),
	} {
		if err := execSqlizer(ctx, tx, q); err != nil {
			return fmt.Errorf("index %s: delete %d: %w", x.mapping.Index, id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("index %s: commit: %w", x.mapping.Index, err)
	}
	return nil
}

// Search returns the documents matching query, ordered by the page's sort
// keys and then by id. Documents without a sort value come first in
// ascending order and last in descending order.
func (x *Index[E]) Search(ctx context.Context, query string, page domain.PageRequest) (domain.Page[E], error) {
	node, err := search.ParseQuery(query)
	if err != nil {
		return domain.Page[E]{}, err
	}
	cond, err := compiler{mapping: x.mapping, fts: x.fts}.compile(node)
	if err != nil {
		return domain.Page[E]{}, err
	}

	countSQL, countArgs, err := sq.Select("COUNT(*)").From(quoteIdent(x.docs)).Where(cond).ToSql()
	if err != nil {
		return domain.Page[E]{}, fmt.Errorf("index %s: build count: %w", x.mapping.Index, err)
	}
	var total int
	if err := x.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return domain.Page[E]{}, fmt.Errorf("index %s: count: %w", x.mapping.Index, err)
	}

	b := sq.Select("body").From(quoteIdent(x.docs)).Where(cond).OrderBy(x.orderBy(page.Sort)...)
	if limit := x.mapping.Limit(page); limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if off := page.Offset(); off > 0 {
		b = b.Offset(uint64(off))
	}
	selectSQL, args, err := b.ToSql()
	if err != nil {
		return domain.Page[E]{}, fmt.Errorf("index %s: build search: %w", x.mapping.Index, err)
	}

	rows, err := x.db.QueryContext(ctx, selectSQL, args...)
	if err != nil {
		return domain.Page[E]{}, fmt.Errorf("index %s: search: %w", x.mapping.Index, err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]E, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return domain.Page[E]{}, fmt.Errorf("index %s: scan: %w", x.mapping.Index, err)
		}
		var e E
		if err := json.Unmarshal([]byte(body), &e); err != nil {
			return domain.Page[E]{}, fmt.Errorf("index %s: decode: %w", x.mapping.Index, err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[E]{}, fmt.Errorf("index %s: rows: %w", x.mapping.Index, err)
	}
	return domain.Page[E]{Items: items, Total: total, Request: page}, nil
}

// Ping checks that the index database answers.
func (x *Index[E]) Ping(ctx context.Context) error {
	return x.db.PingContext(ctx)
}

func (x *Index[E]) orderBy(keys []domain.Order) []string {
	orders := x.mapping.Orders(keys)
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		col := "id"
		if o.Field != "id" {
			col = quoteIdent(sortColumn(o.Field))
		}
		if o.Desc {
			out = append(out, col+" DESC")
		} else {
			out = append(out, col+" ASC")
		}
	}
	return out
}

func sortColumn(field string) string {
	return "sort_" + search.Column(field)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func execSqlizer(ctx context.Context, db execer, q sq.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = quoteIdent(s)
	}
	return out
}
