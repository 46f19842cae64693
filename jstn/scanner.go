package jstn

import (
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokIllegal tokenKind = iota
	tokEOF
	tokNewline
	tokIdent

	tokLBrace   // {
	tokRBrace   // }
	tokLBracket // [
	tokRBracket // ]
	tokColon    // :
	tokSemi     // ;
	tokQuestion // ?

	tokString  // string
	tokNumber  // number
	tokBoolean // boolean
	tokNull    // null
)

var tokenNames = [...]string{
	tokIllegal:  "illegal character",
	tokEOF:      "end of input",
	tokNewline:  "newline",
	tokIdent:    "identifier",
	tokLBrace:   "'{'",
	tokRBrace:   "'}'",
	tokLBracket: "'['",
	tokRBracket: "']'",
	tokColon:    "':'",
	tokSemi:     "';'",
	tokQuestion: "'?'",
	tokString:   "'string'",
	tokNumber:   "'number'",
	tokBoolean:  "'boolean'",
	tokNull:     "'null'",
}

func (k tokenKind) String() string { return tokenNames[k] }

var punctuation = map[rune]tokenKind{
	'{': tokLBrace,
	'}': tokRBrace,
	'[': tokLBracket,
	']': tokRBracket,
	':': tokColon,
	';': tokSemi,
	'?': tokQuestion,
}

// keywords are matched case-insensitively.
var keywords = map[string]tokenKind{
	"string":  tokString,
	"number":  tokNumber,
	"boolean": tokBoolean,
	"null":    tokNull,
}

type token struct {
	kind tokenKind
	lit  string
	pos  Position
}

// Position is a 1-based line and column in declaration text.
type Position struct {
	Line   int
	Column int
}

// scanner splits declaration text into tokens. Spaces and tabs are dropped;
// runs of line breaks collapse into a single newline token because newlines
// separate object members.
type scanner struct {
	src  string
	off  int
	line int
	col  int
}

func newScanner(src string) *scanner { return &scanner{src: src, line: 1, col: 1} }

func (s *scanner) peekRune() (rune, int) {
	if s.off >= len(s.src) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.src[s.off:])
}

func (s *scanner) advance(r rune, w int) {
	s.off += w
	if r == '\n' {
		s.line++
		s.col = 1
		return
	}
	s.col++
}

func (s *scanner) next() token {
	for {
		r, w := s.peekRune()
		if w == 0 || (r != ' ' && r != '\t') {
			break
		}
		s.advance(r, w)
	}

	pos := Position{Line: s.line, Column: s.col}
	r, w := s.peekRune()
	switch {
	case w == 0:
		return token{kind: tokEOF, pos: pos}
	case r == '\r' || r == '\n':
		for {
			r, w = s.peekRune()
			if w == 0 || (r != '\r' && r != '\n' && r != ' ' && r != '\t') {
				break
			}
			s.advance(r, w)
		}
		return token{kind: tokNewline, lit: "\n", pos: pos}
	case isLetter(r):
		start := s.off
		for {
			r, w = s.peekRune()
			if w == 0 || !(isLetter(r) || isDigit(r) || r == '_') {
				break
			}
			s.advance(r, w)
		}
		lit := s.src[start:s.off]
		if k, ok := keywords[strings.ToLower(lit)]; ok {
			return token{kind: k, lit: lit, pos: pos}
		}
		return token{kind: tokIdent, lit: lit, pos: pos}
	}

	s.advance(r, w)
	if k, ok := punctuation[r]; ok {
		return token{kind: k, lit: string(r), pos: pos}
	}
	return token{kind: tokIllegal, lit: string(r), pos: pos}
}

func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
