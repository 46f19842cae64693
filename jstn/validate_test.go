package jstn_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/reoring/jstnlab/jstn"
)

const writtenCollection = `{
	author: {
		penName: string?
	}
	works: [{
		title: string
		language: string
		pageCount: number?
	}]
}`

func decode(t *testing.T, doc string) any {
	t.Helper()
	var v any
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", doc, err)
	}
	return v
}

func TestValid(t *testing.T) {
	cases := []struct {
		decl  string
		doc   string
		valid bool
	}{
		{"string", `"a string"`, true},
		{"string?", `null`, true},
		{"string", `null`, false},
		{"string", `true`, false},
		{"number", `1`, true},
		{"number", `-1`, true},
		{"number", `3.1415`, true},
		{"number", `"1"`, false},
		{"boolean", `false`, true},
		{"boolean?", `null`, true},
		{"boolean", `0`, false},
		{"null", `null`, true},
		{"null", `"null"`, false},
		{"[]", `[]`, true},
		{"[]", `[1]`, false},
		{"[number]", `[]`, true},
		{"[number]", `[1, 2, 3]`, true},
		{"[number]", `[1, "2"]`, false},
		{"[number?]", `[1, null]`, true},
		{"[number]?", `null`, false},
		{"[number]", `{}`, false},
		{"{}", `{}`, true},
		{"{}", `{"a": 1}`, false},
		{"{a: number}", `{}`, false},
		{"{a: number?}", `{}`, true},
		{"{a: number?}", `{"a": null}`, true},
		{"{a: number}?", `null`, false},
		{"{a: [string]?}", `{}`, true},
		{"{a: [string]?}", `{"a": null}`, false},
		{"{a: {b: number}?}", `{"a": null}`, false},
		{"{a: number}", `[]`, false},
		{writtenCollection, `{"author": {}, "works": []}`, true},
		{writtenCollection, `{"author": {"penName": "Mark Twain"}, "works": [{"title": "Huckleberry Finn", "language": "en-US", "pageCount": 366}]}`, true},
		{writtenCollection, `{"author": {}, "works": [{"title": "Huckleberry Finn"}]}`, false},
		{writtenCollection, `{"author": {}, "works": [], "publisher": "x"}`, false},
	}
	for _, c := range cases {
		typ := jstn.MustParse(c.decl)
		if got := jstn.Valid(typ, decode(t, c.doc)); got != c.valid {
			t.Fatalf("Valid(%s, %s) = %v, want %v", typ, c.doc, got, c.valid)
		}
	}
}

func TestValid_GoNumbers(t *testing.T) {
	typ := jstn.MustParse("[number]")
	if !jstn.Valid(typ, []any{1, int64(2), 3.5, float32(1), uint8(4)}) {
		t.Fatalf("expected Go numeric values to validate as numbers")
	}
}

func TestCheck_ReportsPaths(t *testing.T) {
	typ := jstn.MustParse(writtenCollection)
	doc := decode(t, `{"author": {"penName": 7}, "works": [{"title": "x", "language": "en"}, {"language": "fr", "isbn": "1"}], "a/b": 1}`)

	got := jstn.Check(typ, doc)
	want := []jstn.Mismatch{
		{Path: "/a~1b", Code: jstn.CodeUnknownKey},
		{Path: "/author/penName", Code: jstn.CodeInvalidType},
		{Path: "/works/1/isbn", Code: jstn.CodeUnknownKey},
		{Path: "/works/1/title", Code: jstn.CodeRequired},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d mismatches, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i].Path != want[i].Path || got[i].Code != want[i].Code {
			t.Fatalf("mismatch %d: got %+v, want %+v", i, got[i], want[i])
		}
		if got[i].Message == "" {
			t.Fatalf("mismatch %d: empty message", i)
		}
	}
}

func TestCheck_NilWhenValid(t *testing.T) {
	if got := jstn.Check(jstn.MustParse("string?"), "foo bar"); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestCheck_EmptyArrayDeclaration(t *testing.T) {
	got := jstn.Check(jstn.MustParse("[]"), []any{"x"})
	if len(got) != 1 || got[0].Code != jstn.CodeNonEmptyArray || got[0].Path != "" {
		t.Fatalf("unexpected mismatches: %+v", got)
	}
}
