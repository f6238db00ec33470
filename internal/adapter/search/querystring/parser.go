package querystring

import (
	"fmt"
	"strings"
)

type occur int

const (
	occurShould occur = iota
	occurMust
	occurMustNot
)

type clause struct {
	node  Node
	occur occur
}

// MaxDepth bounds the nesting of groups, prefixes and field scopes.
const MaxDepth = 64

type parser struct {
	toks  []token
	pos   int
	depth int
}

func (p *parser) enter(at int) error {
	p.depth++
	if p.depth > MaxDepth {
		return fmt.Errorf("query nested deeper than %d levels at position %d", MaxDepth, at)
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// Parse parses a query string. An empty or blank query matches everything.
func Parse(q string) (Node, error) {
	if strings.TrimSpace(q) == "" {
		return MatchAll{}, nil
	}
	toks, err := lex(q)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseQuery("")
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %s at position %d", describe(t), t.pos)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// parseQuery reads clauses up to a closing parenthesis or the end of input.
// Adjacent clauses and explicit OR both combine as optional clauses.
func (p *parser) parseQuery(field string) (Node, error) {
	var clauses []clause
	for {
		switch p.peek().kind {
		case tokEOF, tokRParen:
			if len(clauses) == 0 {
				return nil, fmt.Errorf("empty expression at position %d", p.peek().pos)
			}
			return combine(clauses), nil
		case tokOr:
			if len(clauses) == 0 {
				return nil, fmt.Errorf("OR without left operand at position %d", p.peek().pos)
			}
			p.advance()
			continue
		}
		c, err := p.parseAnd(field)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}
}

func (p *parser) parseAnd(field string) (clause, error) {
	first, err := p.parseUnary(field)
	if err != nil {
		return clause{}, err
	}
	if p.peek().kind != tokAnd {
		return first, nil
	}
	operands := []clause{first}
	for p.peek().kind == tokAnd {
		p.advance()
		c, err := p.parseUnary(field)
		if err != nil {
			return clause{}, err
		}
		operands = append(operands, c)
	}
	var b Bool
	for _, c := range operands {
		if c.occur == occurMustNot {
			b.MustNot = append(b.MustNot, c.node)
		} else {
			b.Must = append(b.Must, c.node)
		}
	}
	return clause{node: b}, nil
}

func (p *parser) parseUnary(field string) (clause, error) {
	switch t := p.peek(); t.kind {
	case tokNot, tokMinus:
		p.advance()
		if err := p.enter(t.pos); err != nil {
			return clause{}, err
		}
		c, err := p.parseUnary(field)
		p.leave()
		if err != nil {
			return clause{}, err
		}
		if c.occur == occurMustNot {
			return clause{node: c.node, occur: occurMust}, nil
		}
		return clause{node: c.node, occur: occurMustNot}, nil
	case tokPlus:
		p.advance()
		if err := p.enter(t.pos); err != nil {
			return clause{}, err
		}
		c, err := p.parseUnary(field)
		p.leave()
		if err != nil {
			return clause{}, err
		}
		if c.occur == occurMustNot {
			return c, nil
		}
		return clause{node: c.node, occur: occurMust}, nil
	}
	n, err := p.parsePrimary(field)
	if err != nil {
		return clause{}, err
	}
	return clause{node: n}, nil
}

func (p *parser) parsePrimary(field string) (Node, error) {
	t := p.advance()
	switch t.kind {
	case tokLParen:
		if err := p.enter(t.pos); err != nil {
			return nil, err
		}
		n, err := p.parseQuery(field)
		p.leave()
		if err != nil {
			return nil, err
		}
		if c := p.advance(); c.kind != tokRParen {
			return nil, fmt.Errorf("missing ) for ( at position %d", t.pos)
		}
		return n, nil
	case tokField:
		if err := p.enter(t.pos); err != nil {
			return nil, err
		}
		defer p.leave()
		return p.parsePrimary(t.text)
	case tokWord:
		return wordNode(field, t), nil
	case tokPhrase:
		return Term{Field: field, Tokens: Tokenize(t.text), Prefix: t.prefix}, nil
	default:
		return nil, fmt.Errorf("unexpected %s at position %d", describe(t), t.pos)
	}
}

func wordNode(field string, t token) Node {
	tokens := Tokenize(t.text)
	if t.prefix && t.text == "" {
		if field == "" {
			return MatchAll{}
		}
		return Exists{Field: field}
	}
	return Term{Field: field, Tokens: tokens, Prefix: t.prefix}
}

func combine(clauses []clause) Node {
	if len(clauses) == 1 && clauses[0].occur == occurShould {
		return clauses[0].node
	}
	var b Bool
	for _, c := range clauses {
		switch c.occur {
		case occurMust:
			b.Must = append(b.Must, c.node)
		case occurMustNot:
			b.MustNot = append(b.MustNot, c.node)
		default:
			b.Should = append(b.Should, c.node)
		}
	}
	return b
}

func describe(t token) string {
	switch t.kind {
	case tokEOF:
		return "end of query"
	case tokRParen:
		return ")"
	case tokLParen:
		return "("
	case tokAnd:
		return "AND"
	case tokOr:
		return "OR"
	case tokNot:
		return "NOT"
	case tokPlus:
		return "+"
	case tokMinus:
		return "-"
	case tokField:
		return fmt.Sprintf("field %q", t.text)
	default:
		return fmt.Sprintf("%q", t.text)
	}
}
