package jstnlab

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/jstnlab/jstn"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeParseError      = "parse_error"
	CodeUnexpectedToken = "unexpected_token"
	CodeDuplicateKey    = "duplicate_key"
	CodeTruncated       = "truncated"
	// Mismatch codes mirror jstn.Check.
	CodeInvalidType   = jstn.CodeInvalidType
	CodeRequired      = jstn.CodeRequired
	CodeUnknownKey    = jstn.CodeUnknownKey
	CodeNonEmptyArray = jstn.CodeNonEmptyArray
)

// Issue is a single parse or validation finding.
type Issue struct {
	Path    string `json:"path,omitempty"` // JSON Pointer for data documents.
	Code    string `json:"code"`
	Message string `json:"message"`
	// Line and Column locate declaration syntax errors (1-based, 0 if unknown).
	Line   int `json:"line,omitempty"`
	Column int `json:"column,omitempty"`
	// Summary is the localized one-line text for Code, filled in snapshots.
	Summary string `json:"summary,omitempty"`
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		switch {
		case it.Path != "":
			fmt.Fprintf(b, "%s at %s: %s", it.Code, it.Path, it.Message)
		case it.Line > 0:
			fmt.Fprintf(b, "%s at %d:%d: %s", it.Code, it.Line, it.Column, it.Message)
		default:
			fmt.Fprintf(b, "%s: %s", it.Code, it.Message)
		}
	}
	if n := len(iss); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func singleIssue(code, msg string) Issues { return Issues{{Code: code, Message: msg}} }

// issuesFromMismatches converts jstn.Check output.
func issuesFromMismatches(ms []jstn.Mismatch) Issues {
	if len(ms) == 0 {
		return nil
	}
	out := make(Issues, 0, len(ms))
	for _, m := range ms {
		out = append(out, Issue{Path: displayPath(m.Path), Code: m.Code, Message: m.Message})
	}
	return out
}

func displayPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
