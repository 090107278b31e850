package parser

import (
	"fmt"
	"strings"
	"unicode"

	"binastgen/internal/errors"
)

// expr is a parsed type expression before name resolution.
type expr interface {
	canonical() string
}

type nameExpr struct{ name string }

type sequenceExpr struct{ elem expr }

type unionExpr struct{ members []expr }

type nullableExpr struct{ inner expr }

type voidExpr struct{}

func (e nameExpr) canonical() string { return e.name }

func (e sequenceExpr) canonical() string {
	return sequenceKeyword + "<" + e.elem.canonical() + ">"
}

func (e unionExpr) canonical() string {
	parts := make([]string, len(e.members))
	for i, m := range e.members {
		parts[i] = m.canonical()
	}
	return "(" + strings.Join(parts, " or ") + ")"
}

func (e nullableExpr) canonical() string { return e.inner.canonical() + "?" }

func (voidExpr) canonical() string { return voidKeyword }

const (
	sequenceKeyword = "FrozenArray"
	unionKeyword    = "or"
	voidKeyword     = "void"
)

// parseTypeExpr parses the type expression grammar:
//
//	type    = primary [ "?" ]
//	primary = name | "void" | "FrozenArray" "<" type ">" | "(" type { "or" type } ")"
func parseTypeExpr(src string) (expr, error) {
	p := &exprParser{src: src}
	p.next()
	e, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.tok != "" {
		return nil, p.errorf("unexpected %q after type", p.tok)
	}
	return e, nil
}

type exprParser struct {
	src string
	pos int    // offset of the next unread byte
	tok string // current token, "" at end of input
	at  int    // offset of the current token
}

func (p *exprParser) errorf(format string, args ...interface{}) error {
	return errors.Newf("type %q at offset %d: %s", p.src, p.at, fmt.Sprintf(format, args...))
}

func (p *exprParser) next() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
	p.at = p.pos
	if p.pos >= len(p.src) {
		p.tok = ""
		return
	}
	start := p.pos
	if isIdentByte(p.src[p.pos]) {
		for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
			p.pos++
		}
	} else {
		p.pos++
	}
	p.tok = p.src[start:p.pos]
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func (p *exprParser) expect(tok string) error {
	if p.tok != tok {
		if p.tok == "" {
			return p.errorf("expected %q, found end of input", tok)
		}
		return p.errorf("expected %q, found %q", tok, p.tok)
	}
	p.next()
	return nil
}

func (p *exprParser) parseType() (expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok == "?" {
		p.next()
		return nullableExpr{inner: e}, nil
	}
	return e, nil
}

func (p *exprParser) parsePrimary() (expr, error) {
	switch {
	case p.tok == "":
		return nil, p.errorf("expected a type, found end of input")
	case p.tok == "(":
		p.next()
		var members []expr
		for {
			m, err := p.parseType()
			if err != nil {
				return nil, err
			}
			members = append(members, m)
			if p.tok != unionKeyword {
				break
			}
			p.next()
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		if len(members) == 1 {
			return members[0], nil
		}
		return unionExpr{members: members}, nil
	case p.tok == sequenceKeyword:
		p.next()
		if err := p.expect("<"); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		return sequenceExpr{elem: elem}, nil
	case p.tok == voidKeyword:
		p.next()
		return voidExpr{}, nil
	case p.tok == unionKeyword:
		return nil, p.errorf("unexpected %q", p.tok)
	case isIdentByte(p.tok[0]):
		name := p.tok
		p.next()
		return nameExpr{name: name}, nil
	default:
		return nil, p.errorf("unexpected %q", p.tok)
	}
}
