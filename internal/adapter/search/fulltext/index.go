// Package fulltext implements the search index on bleve. Queries are parsed
// by the querystring package and translated to bleve queries, since the
// bleve query string syntax has no AND, OR or NOT operators and no grouping.
package fulltext

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	bsearch "github.com/blevesearch/bleve/v2/search"

	"github.com/wafflemkr/points/internal/adapter/search"
	"github.com/wafflemkr/points/internal/adapter/search/querystring"
	"github.com/wafflemkr/points/internal/domain"
)

type Index[E search.Document] struct {
	idx     bleve.Index
	mapping search.Mapping
}

// Open opens the index stored in dir, creating it when dir does not exist.
func Open[E search.Document](dir string, m search.Mapping) (*Index[E], error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	var (
		idx bleve.Index
		err error
	)
	_, statErr := os.Stat(dir)
	switch {
	case errors.Is(statErr, os.ErrNotExist):
		im, mErr := indexMapping(m)
		if mErr != nil {
			return nil, fmt.Errorf("index %s: mapping: %w", m.Index, mErr)
		}
		if err := os.MkdirAll(filepath.Dir(dir), 0o750); err != nil {
			return nil, fmt.Errorf("index %s: create dirs: %w", m.Index, err)
		}
		idx, err = bleve.New(dir, im)
	case statErr != nil:
		return nil, fmt.Errorf("index %s: %w", m.Index, statErr)
	default:
		idx, err = bleve.Open(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("index %s: open %s: %w", m.Index, dir, err)
	}
	return &Index[E]{idx: idx, mapping: m}, nil
}

// NewMemOnly creates an index that lives in process memory.
func NewMemOnly[E search.Document](m search.Mapping) (*Index[E], error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	im, err := indexMapping(m)
	if err != nil {
		return nil, fmt.Errorf("index %s: mapping: %w", m.Index, err)
	}
	idx, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", m.Index, err)
	}
	return &Index[E]{idx: idx, mapping: m}, nil
}

// Save stores the current state of e, replacing any previous copy.
func (x *Index[E]) Save(ctx context.Context, e *E) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := (*e).Identity()
	if id == 0 {
		return fmt.Errorf("index %s: save document without id", x.mapping.Index)
	}
	doc, err := x.document(id, e)
	if err != nil {
		return err
	}
	if err := x.idx.Index(docID(id), doc); err != nil {
		return fmt.Errorf("index %s: save %d: %w", x.mapping.Index, id, err)
	}
	return nil
}

func (x *Index[E]) document(id int64, e *E) (map[string]any, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("index %s: encode %d: %w", x.mapping.Index, id, err)
	}
	fields := (*e).IndexFields()
	fields["id"] = strconv.FormatInt(id, 10)

	doc := make(map[string]any, len(fields)*2+2)
	present := make([]string, 0, len(fields))
	for _, f := range x.mapping.Fields {
		v := fields[f]
		if v == "" {
			continue
		}
		present = append(present, f)
		if tokens := querystring.Tokenize(v); len(tokens) > 0 {
			doc[search.Column(f)] = strings.Join(tokens, " ")
		}
	}
	for _, f := range sortFields(x.mapping) {
		if v := fields[f]; v != "" {
			doc[sortField(f)] = search.SortKey(v)
		}
	}
	doc[presentField] = present
	doc[sourceField] = string(body)
	return doc, nil
}

// Delete removes the document with the given id. Deleting an absent id is
// not an error.
func (x *Index[E]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := x.idx.Delete(docID(id)); err != nil {
		return fmt.Errorf("index %s: delete %d: %w", x.mapping.Index, id, err)
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
	q, err := compiler{mapping: x.mapping, dict: x.idx}.compile(node)
	if err != nil {
		return domain.Page[E]{}, fmt.Errorf("index %s: %w", x.mapping.Index, err)
	}

	count, err := x.idx.DocCount()
	if err != nil {
		return domain.Page[E]{}, fmt.Errorf("index %s: count: %w", x.mapping.Index, err)
	}
	// bleve sizes its collector by from+size, so neither may exceed the
	// number of documents.
	size := int(count)
	if limit := x.mapping.Limit(page); limit > 0 && limit < size {
		size = limit
	}
	from := min(page.Offset(), int(count))

	req := bleve.NewSearchRequestOptions(q, size, from, false)
	req.Fields = []string{sourceField}
	req.SortByCustom(x.sortOrder(page.Sort))

	res, err := x.idx.SearchInContext(ctx, req)
	if err != nil {
		return domain.Page[E]{}, fmt.Errorf("index %s: search: %w", x.mapping.Index, err)
	}

	items := make([]E, 0, len(res.Hits))
	for _, h := range res.Hits {
		body, ok := h.Fields[sourceField].(string)
		if !ok {
			return domain.Page[E]{}, fmt.Errorf("index %s: document %s has no source", x.mapping.Index, h.ID)
		}
		var e E
		if err := json.Unmarshal([]byte(body), &e); err != nil {
			return domain.Page[E]{}, fmt.Errorf("index %s: decode %s: %w", x.mapping.Index, h.ID, err)
		}
		items = append(items, e)
	}
	return domain.Page[E]{Items: items, Total: int(res.Total), Request: page}, nil
}

func (x *Index[E]) sortOrder(keys []domain.Order) bsearch.SortOrder {
	orders := x.mapping.Orders(keys)
	out := make(bsearch.SortOrder, 0, len(orders))
	for _, o := range orders {
		missing := bsearch.SortFieldMissingFirst
		if o.Desc {
			missing = bsearch.SortFieldMissingLast
		}
		out = append(out, &bsearch.SortField{
			Field:   sortField(o.Field),
			Desc:    o.Desc,
			Type:    bsearch.SortFieldAsString,
			Missing: missing,
		})
	}
	return out
}

// Ping checks that the index answers.
func (x *Index[E]) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := x.idx.DocCount(); err != nil {
		return fmt.Errorf("index %s: %w", x.mapping.Index, err)
	}
	return nil
}

func (x *Index[E]) Close() error {
	return x.idx.Close()
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}
