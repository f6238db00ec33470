package fulltext

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/wafflemkr/points/internal/adapter/search"
	"github.com/wafflemkr/points/internal/adapter/search/querystring"
)

// maxExpansions caps the terms a trailing prefix in a phrase expands to.
const maxExpansions = 1024

// compiler turns a parsed query into a bleve query.
type compiler struct {
	mapping search.Mapping
	dict    bleve.Index
}

func (c compiler) compile(n querystring.Node) (query.Query, error) {
	switch n := n.(type) {
	case querystring.MatchAll:
		return query.NewMatchAllQuery(), nil
	case querystring.Exists:
		if !c.mapping.HasField(n.Field) {
			return query.NewMatchNoneQuery(), nil
		}
		q := query.NewTermQuery(n.Field)
		q.SetField(presentField)
		return q, nil
	case querystring.Term:
		if len(n.Tokens) == 0 || (n.Field != "" && !c.mapping.HasField(n.Field)) {
			return query.NewMatchNoneQuery(), nil
		}
		if n.Field != "" {
			return c.term(search.Column(n.Field), n)
		}
		either := make([]query.Query, 0, len(c.mapping.Fields))
		for _, f := range c.mapping.Fields {
			q, err := c.term(search.Column(f), n)
			if err != nil {
				return nil, err
			}
			either = append(either, q)
		}
		return query.NewDisjunctionQuery(either), nil
	case querystring.Bool:
		return c.compileBool(n)
	default:
		return nil, fmt.Errorf("unsupported query node %T", n)
	}
}

func (c compiler) compileBool(b querystring.Bool) (query.Query, error) {
	var must, should, mustNot []query.Query
	for _, m := range b.Must {
		q, err := c.compile(m)
		if err != nil {
			return nil, err
		}
		must = append(must, q)
	}
	// Should clauses only count when nothing is required.
	if len(b.Must) == 0 {
		for _, m := range b.Should {
			q, err := c.compile(m)
			if err != nil {
				return nil, err
			}
			should = append(should, q)
		}
	}
	for _, m := range b.MustNot {
		q, err := c.compile(m)
		if err != nil {
			return nil, err
		}
		mustNot = append(mustNot, q)
	}
	if len(must)+len(should)+len(mustNot) == 0 {
		return query.NewMatchAllQuery(), nil
	}
	bq := query.NewBooleanQuery(must, should, mustNot)
	if len(should) > 0 {
		bq.SetMinShould(1)
	}
	return bq, nil
}

// term matches t in one field: a single token as a term or prefix, several
// as a phrase whose last token may be a prefix.
func (c compiler) term(field string, t querystring.Term) (query.Query, error) {
	last := t.Tokens[len(t.Tokens)-1]
	switch {
	case len(t.Tokens) == 1 && t.Prefix:
		q := query.NewPrefixQuery(last)
		q.SetField(field)
		return q, nil
	case len(t.Tokens) == 1:
		q := query.NewTermQuery(last)
		q.SetField(field)
		return q, nil
	case !t.Prefix:
		return query.NewPhraseQuery(t.Tokens, field), nil
	}

	expanded, err := c.expand(field, last)
	if err != nil {
		return nil, err
	}
	if len(expanded) == 0 {
		return query.NewMatchNoneQuery(), nil
	}
	terms := make([][]string, 0, len(t.Tokens))
	for _, tok := range t.Tokens[:len(t.Tokens)-1] {
		terms = append(terms, []string{tok})
	}
	terms = append(terms, expanded)
	return query.NewMultiPhraseQuery(terms, field), nil
}

// expand lists the indexed terms of field that start with prefix.
func (c compiler) expand(field, prefix string) ([]string, error) {
	dict, err := c.dict.FieldDictPrefix(field, []byte(prefix))
	if err != nil {
		return nil, fmt.Errorf("expand %s:%s*: %w", field, prefix, err)
	}
	defer func() { _ = dict.Close() }()

	var out []string
	for len(out) < maxExpansions {
		entry, err := dict.Next()
		if err != nil {
			return nil, fmt.Errorf("expand %s:%s*: %w", field, prefix, err)
		}
		if entry == nil {
			break
		}
		out = append(out, entry.Term)
	}
	return out, nil
}
