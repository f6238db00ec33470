package querystring

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  Node
	}{
		{name: "empty", query: "", want: MatchAll{}},
		{name: "blank", query: "   ", want: MatchAll{}},
		{name: "star", query: "*", want: MatchAll{}},
		{name: "bare term", query: "Dinner", want: Term{Tokens: []string{"dinner"}}},
		{name: "field term", query: "id:5", want: Term{Field: "id", Tokens: []string{"5"}}},
		{name: "nested field", query: "user.login:admin", want: Term{Field: "user.login", Tokens: []string{"admin"}}},
		{name: "phrase", query: `"late Dinner"`, want: Term{Tokens: []string{"late", "dinner"}}},
		{name: "field phrase", query: `notes:"late dinner"`, want: Term{Field: "notes", Tokens: []string{"late", "dinner"}}},
		{name: "prefix", query: "din*", want: Term{Tokens: []string{"din"}, Prefix: true}},
		{name: "field exists", query: "notes:*", want: Exists{Field: "notes"}},
		{name: "value keeps colons", query: "timestamp:2024-05-01T06:30:00Z", want: Term{
			Field: "timestamp", Tokens: []string{"2024", "05", "01t06", "30", "00z"},
		}},
		{name: "multi token word is a phrase", query: "date:1970-01-01", want: Term{
			Field: "date", Tokens: []string{"1970", "01", "01"},
		}},
		{name: "default operator is OR", query: "a b", want: Bool{
			Should: []Node{Term{Tokens: []string{"a"}}, Term{Tokens: []string{"b"}}},
		}},
		{name: "explicit OR", query: "a OR b", want: Bool{
			Should: []Node{Term{Tokens: []string{"a"}}, Term{Tokens: []string{"b"}}},
		}},
		{name: "double pipe", query: "a || b", want: Bool{
			Should: []Node{Term{Tokens: []string{"a"}}, Term{Tokens: []string{"b"}}},
		}},
		{name: "AND", query: "a AND b", want: Bool{
			Must: []Node{Term{Tokens: []string{"a"}}, Term{Tokens: []string{"b"}}},
		}},
		{name: "double ampersand", query: "a && b", want: Bool{
			Must: []Node{Term{Tokens: []string{"a"}}, Term{Tokens: []string{"b"}}},
		}},
		{name: "AND NOT", query: "a AND NOT b", want: Bool{
			Must:    []Node{Term{Tokens: []string{"a"}}},
			MustNot: []Node{Term{Tokens: []string{"b"}}},
		}},
		{name: "lone NOT", query: "NOT a", want: Bool{MustNot: []Node{Term{Tokens: []string{"a"}}}}},
		{name: "bang", query: "!a", want: Bool{MustNot: []Node{Term{Tokens: []string{"a"}}}}},
		{name: "plus minus", query: "+a -b c", want: Bool{
			Must:    []Node{Term{Tokens: []string{"a"}}},
			MustNot: []Node{Term{Tokens: []string{"b"}}},
			Should:  []Node{Term{Tokens: []string{"c"}}},
		}},
		{name: "double negation", query: "NOT NOT a", want: Bool{Must: []Node{Term{Tokens: []string{"a"}}}}},
		{name: "grouping", query: "(a OR b) AND c", want: Bool{
			Must: []Node{
				Bool{Should: []Node{Term{Tokens: []string{"a"}}, Term{Tokens: []string{"b"}}}},
				Term{Tokens: []string{"c"}},
			},
		}},
		{name: "field group", query: "notes:(a b)", want: Bool{
			Should: []Node{Term{Field: "notes", Tokens: []string{"a"}}, Term{Field: "notes", Tokens: []string{"b"}}},
		}},
		{name: "escaped colon", query: `a\:b`, want: Term{Tokens: []string{"a", "b"}}},
		{name: "lowercase and is a term", query: "a and b", want: Bool{
			Should: []Node{Term{Tokens: []string{"a"}}, Term{Tokens: []string{"and"}}, Term{Tokens: []string{"b"}}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.query, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.query, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	queries := []string{
		`"unterminated`,
		"(a",
		"a)",
		"()",
		"a AND",
		"NOT",
		"OR a",
		":a",
		`a\`,
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse(q); err == nil {
				t.Errorf("Parse(%q) expected error", q)
			}
		})
	}
}

func TestParse_NestingLimit(t *testing.T) {
	t.Parallel()

	nested := func(open, term, closing string, n int) string {
		return strings.Repeat(open, n) + term + strings.Repeat(closing, n)
	}

	if _, err := Parse(nested("(", "a", ")", MaxDepth)); err != nil {
		t.Fatalf("%d groups should parse: %v", MaxDepth, err)
	}

	deep := map[string]string{
		"groups":      nested("(", "a", ")", MaxDepth+1),
		"bangs":       nested("!", "a", "", MaxDepth+1),
		"plus":        nested("+", "a", "", MaxDepth+1),
		"field scope": nested("notes: ", "a", "", MaxDepth+1),
		"huge":        strings.Repeat("(", 1_000_000),
	}
	for name, q := range deep {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(q)
			if err == nil {
				t.Fatal("expected a nesting error")
			}
			if !strings.Contains(err.Error(), "nested deeper") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
