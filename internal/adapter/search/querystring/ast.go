// Package querystring parses the subset of the Lucene query string syntax
// accepted by the search endpoints.
//
//	late dinner          either term (default operator OR)
//	"late dinner"        phrase
//	notes:dinner         field term, user.login:admin for nested fields
//	din*                 prefix
//	a AND b, a && b      both
//	NOT a, !a, -a        exclusion
//	+a b                 a required
//	(a OR b) AND c       grouping
//	*                    everything
//
// Terms are matched case-insensitively on tokens split at characters that
// are neither letters nor digits.
package querystring

import (
	"strings"
	"unicode"
)

// Node is a parsed query.
type Node interface {
	node()
}

// MatchAll matches every document.
type MatchAll struct{}

// Term matches a token sequence in one field, or in any field when Field is
// empty. With Prefix set the last token matches as a prefix. A Term without
// tokens matches nothing.
type Term struct {
	Field  string
	Tokens []string
	Prefix bool
}

// Exists matches documents that have a value for Field.
type Exists struct {
	Field string
}

// Bool combines clauses. A document matches when every Must clause matches,
// no MustNot clause matches, and, if there are no Must clauses, at least one
// Should clause matches. A Bool with only MustNot clauses matches every
// document not excluded.
type Bool struct {
	Must    []Node
	Should  []Node
	MustNot []Node
}

func (MatchAll) node() {}
func (Term) node()     {}
func (Exists) node()   {}
func (Bool) node()     {}

// Tokenize lowercases s and splits it into runs of letters and digits.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
