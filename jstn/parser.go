package jstn

import "fmt"

// ParseError describes a syntax error in declaration text.
type ParseError struct {
	Pos Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jstn: %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Parse parses a complete declaration. Leading and trailing line breaks are
// allowed; any other trailing content is an error.
func Parse(text string) (Type, error) {
	p := &parser{s: newScanner(text)}
	t, err := p.parseType()
	if err != nil {
		return Type{}, err
	}
	if tok := p.nextSkipNewlines(); tok.kind != tokEOF {
		return Type{}, p.unexpected(tok, "end of input")
	}
	return t, nil
}

// MustParse is like Parse but panics on error. Intended for declarations
// known at compile time.
func MustParse(text string) Type {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	s      *scanner
	peeked *token
}

func (p *parser) next() token {
	if p.peeked != nil {
		tok := *p.peeked
		p.peeked = nil
		return tok
	}
	return p.s.next()
}

func (p *parser) backup(tok token) { p.peeked = &tok }

func (p *parser) nextSkipNewlines() token {
	tok := p.next()
	for tok.kind == tokNewline {
		tok = p.next()
	}
	return tok
}

func (p *parser) unexpected(tok token, want string) *ParseError {
	got := tok.kind.String()
	if tok.kind == tokIdent || tok.kind == tokIllegal {
		got = fmt.Sprintf("%s %q", got, tok.lit)
	}
	return &ParseError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %s, expected %s", got, want)}
}

func (p *parser) parseType() (Type, error) {
	tok := p.nextSkipNewlines()
	var (
		t   Type
		err error
	)
	switch tok.kind {
	case tokString:
		t = Type{Kind: KindString}
	case tokNumber:
		t = Type{Kind: KindNumber}
	case tokBoolean:
		t = Type{Kind: KindBoolean}
	case tokNull:
		t = Type{Kind: KindNull}
	case tokLBracket:
		t, err = p.parseArray()
	case tokLBrace:
		t, err = p.parseObject()
	default:
		return Type{}, p.unexpected(tok, "a type")
	}
	if err != nil {
		return Type{}, err
	}
	if q := p.next(); q.kind == tokQuestion {
		t.Optional = true
	} else {
		p.backup(q)
	}
	return t, nil
}

// parseArray runs after the opening bracket.
func (p *parser) parseArray() (Type, error) {
	tok := p.nextSkipNewlines()
	if tok.kind == tokRBracket {
		return Type{Kind: KindArray}, nil
	}
	p.backup(tok)
	items, err := p.parseType()
	if err != nil {
		return Type{}, err
	}
	if tok = p.nextSkipNewlines(); tok.kind != tokRBracket {
		return Type{}, p.unexpected(tok, tokRBracket.String())
	}
	return Type{Kind: KindArray, Items: &items}, nil
}

// parseObject runs after the opening brace.
func (p *parser) parseObject() (Type, error) {
	props := make(map[string]*Type)
	for {
		tok := p.nextSkipNewlines()
		if tok.kind == tokRBrace {
			return Type{Kind: KindObject, Properties: props}, nil
		}
		if !isMemberName(tok.kind) {
			return Type{}, p.unexpected(tok, "a property name or '}'")
		}
		name := tok.lit
		if _, dup := props[name]; dup {
			return Type{}, &ParseError{Pos: tok.pos, Msg: fmt.Sprintf("duplicate property %q", name)}
		}
		if c := p.nextSkipNewlines(); c.kind != tokColon {
			return Type{}, p.unexpected(c, tokColon.String())
		}
		member, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		props[name] = &member

		// Members end with ';', a line break, or the closing brace.
		switch d := p.next(); d.kind {
		case tokSemi, tokNewline:
		case tokRBrace:
			p.backup(d)
		default:
			return Type{}, p.unexpected(d, "';', a newline or '}'")
		}
	}
}

func isMemberName(k tokenKind) bool {
	switch k {
	case tokIdent, tokString, tokNumber, tokBoolean, tokNull:
		return true
	}
	return false
}
