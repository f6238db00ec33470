package querystring

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokPhrase
	tokField
	tokLParen
	tokRParen
	tokAnd
	tokOr
	tokNot
	tokPlus
	tokMinus
)

type token struct {
	kind tokenKind
	text string
	// prefix is set for words ending in an unescaped '*'.
	prefix bool
	pos    int
}

type lexer struct {
	src        []rune
	pos        int
	afterField bool
}

func lex(s string) ([]token, error) {
	l := &lexer{src: []rune(s)}
	var out []token
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if t.kind == tokEOF {
			return out, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
		l.afterField = false
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}

	value := l.afterField
	l.afterField = false

	switch r := l.src[l.pos]; {
	case r == '(':
		l.pos++
		return token{kind: tokLParen, pos: start}, nil
	case r == ')':
		l.pos++
		return token{kind: tokRParen, pos: start}, nil
	case r == '"':
		return l.phrase()
	case r == '!' && !value:
		l.pos++
		return token{kind: tokNot, pos: start}, nil
	case r == '+' && !value:
		l.pos++
		return token{kind: tokPlus, pos: start}, nil
	case r == '-' && !value:
		l.pos++
		return token{kind: tokMinus, pos: start}, nil
	case l.hasPrefix("&&") && !value:
		l.pos += 2
		return token{kind: tokAnd, pos: start}, nil
	case l.hasPrefix("||") && !value:
		l.pos += 2
		return token{kind: tokOr, pos: start}, nil
	}
	return l.word(value)
}

func (l *lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(string(l.src[l.pos:]), s)
}

func (l *lexer) phrase() (token, error) {
	start := l.pos
	l.pos++
	var b strings.Builder
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch {
		case r == '\\' && l.pos+1 < len(l.src):
			b.WriteRune(l.src[l.pos+1])
			l.pos += 2
		case r == '"':
			l.pos++
			t := token{kind: tokPhrase, text: b.String(), pos: start}
			if l.pos < len(l.src) && l.src[l.pos] == '*' {
				t.prefix = true
				l.pos++
			}
			return t, nil
		default:
			b.WriteRune(r)
			l.pos++
		}
	}
	return token{}, fmt.Errorf("unterminated phrase at position %d", start)
}

// word reads a bare term. In value position, after "field:", colons are
// part of the term so that timestamps can be written unescaped.
func (l *lexer) word(value bool) (token, error) {
	start := l.pos
	var b strings.Builder
	prefix := false
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if unicode.IsSpace(r) || r == '(' || r == ')' || r == '"' {
			break
		}
		if r == '\\' {
			if l.pos+1 >= len(l.src) {
				return token{}, fmt.Errorf("dangling escape at position %d", l.pos)
			}
			b.WriteRune(l.src[l.pos+1])
			l.pos += 2
			prefix = false
			continue
		}
		if r == ':' && !value {
			l.pos++
			if b.Len() == 0 {
				return token{}, fmt.Errorf("missing field name at position %d", start)
			}
			l.afterField = true
			return token{kind: tokField, text: b.String(), pos: start}, nil
		}
		prefix = r == '*'
		b.WriteRune(r)
		l.pos++
	}

	text := b.String()
	if !value {
		switch text {
		case "AND":
			return token{kind: tokAnd, pos: start}, nil
		case "OR":
			return token{kind: tokOr, pos: start}, nil
		case "NOT":
			return token{kind: tokNot, pos: start}, nil
		}
	}
	if prefix {
		text = strings.TrimRight(text, "*")
	}
	return token{kind: tokWord, text: text, prefix: prefix, pos: start}, nil
}
