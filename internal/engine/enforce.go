package engine

import (
	"strconv"
	"strings"
)

// DuplicateStrictness controls how repeated object keys are treated.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// EnforceOptions controls runtime enforcement behavior. Zero values disable
// the corresponding check.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives non-fatal issues (duplicate keys under DupWarn).
	IssueSink func(SimpleIssue)
}

// Disabled reports whether wrapping with these options would be a no-op.
func (o EnforceOptions) Disabled() bool {
	return o.OnDuplicate == DupIgnore && o.MaxDepth <= 0 && o.MaxBytes <= 0
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy,
// maximum nesting depth, and maximum consumed bytes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if opt.Disabled() {
		return inner
	}
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type pathFrame struct {
	object bool
	path   string
	keys   map[string]struct{}
	key    string // object: key of the member being read
	index  int    // array: index of the next element
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []pathFrame
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		path := e.valuePath()
		e.stack = append(e.stack, pathFrame{
			object: tok.Kind == KindBeginObject,
			path:   path,
			keys:   map[string]struct{}{},
		})
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, e.fail("parse_error", displayPath(path), "max depth exceeded")
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			top.key = tok.String
			if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
				si := SimpleIssue{
					Code:    "duplicate_key",
					Path:    joinJSONPointer(top.path, tok.String),
					Message: "key '" + tok.String + "' duplicated",
				}
				if e.opt.OnDuplicate == DupError {
					return Token{}, e.fail(si.Code, si.Path, si.Message)
				}
				if e.opt.IssueSink != nil {
					e.opt.IssueSink(si)
				}
			}
			top.keys[tok.String] = struct{}{}
		}
	default:
		e.valuePath()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off > e.opt.MaxBytes {
			return Token{}, e.fail("truncated", displayPath(e.currentPath()), "max bytes exceeded")
		}
	}
	return tok, nil
}

// valuePath returns the pointer of the value starting at the current token
// and advances the enclosing array index.
func (e *enforcingTokenSource) valuePath() string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := &e.stack[n-1]
	if top.object {
		return joinJSONPointer(top.path, top.key)
	}
	p := joinJSONPointer(top.path, strconv.Itoa(top.index))
	top.index++
	return p
}

func (e *enforcingTokenSource) currentPath() string {
	if n := len(e.stack); n > 0 {
		return e.stack[n-1].path
	}
	return ""
}

func (e *enforcingTokenSource) fail(code, path, msg string) error {
	return IssueError{SimpleIssue{Code: code, Path: path, Message: msg}}
}

func displayPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}
