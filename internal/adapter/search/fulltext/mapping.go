package fulltext

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/whitespace"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/wafflemkr/points/internal/adapter/search"
)

const (
	// tokensAnalyzer splits the pre-tokenized field text on spaces. Tokens
	// are produced by querystring.Tokenize so that documents and queries
	// agree on what a token is.
	tokensAnalyzer = "points_tokens"

	presentField = "present_fields"
	sourceField  = "source_json"
)

func sortField(field string) string {
	return "sort_" + search.Column(field)
}

// sortFields lists the fields that get a sort key, id last.
func sortFields(m search.Mapping) []string {
	out := make([]string, 0, len(m.Sortable)+1)
	for _, f := range m.Sortable {
		if f != "id" {
			out = append(out, f)
		}
	}
	return append(out, "id")
}

// indexMapping lays out one kind as a flat bleve document:
//
//	<column>        analyzed tokens of a field, with positions for phrases
//	sort_<column>   keyword holding search.SortKey of the value
//	present_fields  keyword list of the fields that have a value
//	source_json     stored storage form, not indexed
func indexMapping(m search.Mapping) (*mapping.IndexMappingImpl, error) {
	im := bleve.NewIndexMapping()
	err := im.AddCustomAnalyzer(tokensAnalyzer, map[string]any{
		"type":      custom.Name,
		"tokenizer": whitespace.Name,
	})
	if err != nil {
		return nil, err
	}

	doc := bleve.NewDocumentStaticMapping()
	for _, f := range m.Fields {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = tokensAnalyzer
		fm.Store = false
		fm.IncludeInAll = false
		fm.IncludeTermVectors = true
		fm.DocValues = false
		doc.AddFieldMappingsAt(search.Column(f), fm)
	}
	for _, f := range sortFields(m) {
		doc.AddFieldMappingsAt(sortField(f), keywordField())
	}
	doc.AddFieldMappingsAt(presentField, keywordField())

	source := bleve.NewTextFieldMapping()
	source.Index = false
	source.Store = true
	source.IncludeInAll = false
	source.IncludeTermVectors = false
	source.DocValues = false
	doc.AddFieldMappingsAt(sourceField, source)

	im.DefaultMapping = doc
	im.DefaultAnalyzer = keyword.Name
	im.IndexDynamic = false
	im.StoreDynamic = false
	im.DocValuesDynamic = false
	return im, nil
}

func keywordField() *mapping.FieldMapping {
	fm := bleve.NewKeywordFieldMapping()
	fm.Store = false
	fm.IncludeInAll = false
	fm.IncludeTermVectors = false
	return fm
}
