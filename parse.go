package jstnlab

import (
	"errors"
	"fmt"
	"io"

	eng "github.com/reoring/jstnlab/internal/engine"
	"github.com/reoring/jstnlab/jstn"
)

// ParseResult is the outcome of parsing one buffer's text. Exactly one of
// success (OK) or failure (Issues non-empty) holds.
type ParseResult struct {
	ok bool

	// Type is the parsed declaration (RoleTypeDeclaration only).
	Type jstn.Type
	// Value is the decoded document (RoleDataDocument only): map[string]any,
	// []any, string, json.Number, bool or nil.
	Value any
	// Issues explains a failure.
	Issues Issues
	// Warnings are non-fatal findings on success, such as duplicate keys
	// under Warn strictness.
	Warnings Issues
}

// OK reports whether the text parsed.
func (r ParseResult) OK() bool { return r.ok }

func failed(iss Issues) ParseResult { return ParseResult{Issues: iss} }

// parser holds what a buffer needs to parse text for its role.
type parser struct {
	driver JSONDriver
	opt    ParseOpt
}

// parse never panics and never returns an error: any failure, including a
// panicking collaborator, becomes a failed ParseResult.
func (p parser) parse(role Role, text string) (res ParseResult) {
	defer func() {
		if r := recover(); r != nil {
			res = failed(singleIssue(CodeParseError, fmt.Sprintf("parser panic: %v", r)))
		}
	}()
	if role == RoleTypeDeclaration {
		return parseDeclaration(text)
	}
	return p.parseData(text)
}

func parseDeclaration(text string) ParseResult {
	t, err := jstn.Parse(text)
	if err != nil {
		var pe *jstn.ParseError
		if errors.As(err, &pe) {
			return failed(Issues{{Code: CodeUnexpectedToken, Message: pe.Msg, Line: pe.Pos.Line, Column: pe.Pos.Column}})
		}
		return failed(singleIssue(CodeParseError, err.Error()))
	}
	return ParseResult{ok: true, Type: t}
}

func (p parser) parseData(text string) ParseResult {
	if p.opt.MaxBytes > 0 && int64(len(text)) > p.opt.MaxBytes {
		return failed(Issues{{Path: "/", Code: CodeTruncated, Message: "max bytes exceeded"}})
	}
	driver := p.driver
	if driver == nil {
		driver = DefaultJSONDriver()
	}

	var warnings Issues
	src := eng.WrapWithEnforcement(driver.NewBytes([]byte(text)), eng.EnforceOptions{
		OnDuplicate: toEngineDup(p.opt.Strictness.OnDuplicateKey),
		MaxDepth:    p.opt.MaxDepth,
		MaxBytes:    p.opt.MaxBytes,
		IssueSink: func(si eng.SimpleIssue) {
			warnings = append(warnings, Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		},
	})
	v, err := eng.DecodeDocument(src)
	if err != nil {
		return failed(toIssues(err))
	}
	return ParseResult{ok: true, Value: v, Warnings: warnings}
}

func toIssues(err error) Issues {
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{{Code: ie.Code, Path: ie.Path, Message: ie.Message}}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return singleIssue(CodeParseError, "unexpected end of JSON input")
	}
	return singleIssue(CodeParseError, err.Error())
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
