package jstnlab_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	jstnlab "github.com/reoring/jstnlab"
	"github.com/reoring/jstnlab/jstn"
)

func deepEqual(a, b any) bool { return reflect.DeepEqual(a, b) }

var dataInputs = []string{
	`"foo bar"`,
	`42`,
	`-0.5e10`,
	`true`,
	`null`,
	`[]`,
	`{}`,
	`{"a": [1, {"b": null}], "c": "d"}`,
	` [1, 2, 3] `,
	`{invalid json`,
	``,
	`   `,
	`[1,]`,
	`{"a" 1}`,
	`"unterminated`,
	`1 2`,
	`{} {}`,
	`tru`,
	`fals`,
	`nul`,
	`01`,
	`[01]`,
	`00`,
	`-01`,
	`1.`,
	`[1.]`,
	`1e400`,
	`[-0, 1E+2, 0.5e-3]`,
}

func TestBuffer_SetTextIsDeterministic(t *testing.T) {
	for _, in := range dataInputs {
		b := jstnlab.NewBuffer(jstnlab.RoleDataDocument, in)
		first := b.Result()
		b.SetText(in)
		second := b.Result()
		if first.OK() != second.OK() || !deepEqual(first.Value, second.Value) || !deepEqual(first.Issues, second.Issues) {
			t.Fatalf("%q: results differ: %+v vs %+v", in, first, second)
		}
		if b.Text() != in {
			t.Fatalf("%q: text not stored", in)
		}
	}
}

func TestBuffer_DataAgreesWithEncodingJSON(t *testing.T) {
	for _, driver := range []jstnlab.JSONDriver{jstnlab.GoJSONDriver(), jstnlab.StdJSONDriver()} {
		for _, in := range dataInputs {
			b := jstnlab.NewBuffer(jstnlab.RoleDataDocument, in, jstnlab.WithJSONDriver(driver))
			wantOK := json.Valid([]byte(in))
			if b.Result().OK() != wantOK {
				t.Fatalf("%s: %q: OK=%v, json.Valid=%v (%v)", driver.Name(), in, b.Result().OK(), wantOK, b.Result().Issues)
			}
			if !wantOK {
				if len(b.Result().Issues) == 0 {
					t.Fatalf("%s: %q: failure without issues", driver.Name(), in)
				}
				continue
			}
			var want any
			dec := json.NewDecoder(strings.NewReader(in))
			dec.UseNumber()
			if err := dec.Decode(&want); err != nil {
				t.Fatalf("decode %q: %v", in, err)
			}
			if !deepEqual(want, b.Result().Value) {
				t.Fatalf("%s: %q: value %#v, want %#v", driver.Name(), in, b.Result().Value, want)
			}
		}
	}
}

func TestBuffer_Declaration(t *testing.T) {
	b := jstnlab.NewBuffer(jstnlab.RoleTypeDeclaration, "[number?]")
	if !b.Result().OK() || !jstn.Equal(b.Result().Type, jstn.MustParse("[number?]")) {
		t.Fatalf("unexpected result %+v", b.Result())
	}

	b.SetText("{\n  a: string\n  b number\n}")
	res := b.Result()
	if res.OK() {
		t.Fatalf("expected failure")
	}
	if len(res.Issues) != 1 || res.Issues[0].Code != jstnlab.CodeUnexpectedToken || res.Issues[0].Line != 3 {
		t.Fatalf("unexpected issues %+v", res.Issues)
	}
}

func TestBuffer_DuplicateKeys(t *testing.T) {
	doc := `[{"a":1,"a":2}]`

	lax := jstnlab.NewBuffer(jstnlab.RoleDataDocument, doc)
	if !lax.Result().OK() || len(lax.Result().Warnings) != 0 {
		t.Fatalf("duplicates are accepted silently by default: %+v", lax.Result())
	}

	warn := jstnlab.NewBuffer(jstnlab.RoleDataDocument, doc,
		jstnlab.WithParseOpt(jstnlab.ParseOpt{Strictness: jstnlab.Strictness{OnDuplicateKey: jstnlab.Warn}}))
	if !warn.Result().OK() {
		t.Fatalf("warn must not fail: %v", warn.Result().Issues)
	}
	if w := warn.Result().Warnings; len(w) != 1 || w[0].Code != jstnlab.CodeDuplicateKey || w[0].Path != "/0/a" {
		t.Fatalf("unexpected warnings %+v", w)
	}

	strict := jstnlab.NewBuffer(jstnlab.RoleDataDocument, doc,
		jstnlab.WithParseOpt(jstnlab.ParseOpt{Strictness: jstnlab.Strictness{OnDuplicateKey: jstnlab.Error}}))
	if strict.Result().OK() {
		t.Fatalf("expected failure")
	}
	if iss := strict.Result().Issues; iss[0].Code != jstnlab.CodeDuplicateKey || iss[0].Path != "/0/a" {
		t.Fatalf("unexpected issues %+v", iss)
	}
}

func TestBuffer_Limits(t *testing.T) {
	deep := jstnlab.NewBuffer(jstnlab.RoleDataDocument, `{"a":{"b":{"c":1}}}`,
		jstnlab.WithParseOpt(jstnlab.ParseOpt{MaxDepth: 2}))
	if deep.Result().OK() || deep.Result().Issues[0].Path != "/a/b" {
		t.Fatalf("expected max depth failure at /a/b, got %+v", deep.Result())
	}

	big := jstnlab.NewBuffer(jstnlab.RoleDataDocument, `"0123456789"`,
		jstnlab.WithParseOpt(jstnlab.ParseOpt{MaxBytes: 4}))
	if big.Result().OK() || big.Result().Issues[0].Code != jstnlab.CodeTruncated {
		t.Fatalf("expected truncation, got %+v", big.Result())
	}
}

type panickingDriver struct{}

func (panickingDriver) NewBytes([]byte) jstnlab.Source { panic("boom") }
func (panickingDriver) Name() string                   { return "panic" }

func TestBuffer_ParserPanicBecomesFailure(t *testing.T) {
	b := jstnlab.NewBuffer(jstnlab.RoleDataDocument, `1`, jstnlab.WithJSONDriver(panickingDriver{}))
	if b.Result().OK() || b.Result().Issues[0].Code != jstnlab.CodeParseError {
		t.Fatalf("expected parse failure, got %+v", b.Result())
	}
}

func TestIssues_Error(t *testing.T) {
	iss := jstnlab.Issues{
		{Path: "/a", Code: jstnlab.CodeInvalidType, Message: "expected string, got number"},
		{Code: jstnlab.CodeUnexpectedToken, Line: 2, Column: 3, Message: "unexpected"},
		{Code: jstnlab.CodeParseError, Message: "bad"},
		{Path: "/d", Code: jstnlab.CodeRequired},
	}
	want := "invalid_type at /a: expected string, got number; unexpected_token at 2:3: unexpected; parse_error: bad; ... (total 4)"
	if got := iss.Error(); got != want {
		t.Fatalf("got %q", got)
	}
	if _, ok := jstnlab.AsIssues(error(iss)); !ok {
		t.Fatalf("AsIssues failed")
	}
}
