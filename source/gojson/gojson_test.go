package gojson

import (
	"encoding/json"
	"reflect"
	"testing"

	eng "github.com/reoring/jstnlab/internal/engine"
)

func TestNewBytes_Decode(t *testing.T) {
	v, err := eng.DecodeDocument(NewBytes([]byte(`{"k":[1e3,"s",false,null],"o":{"x":[]}}`)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"k": []any{json.Number("1e3"), "s", false, nil},
		"o": map[string]any{"x": []any{}},
	}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("got %#v", v)
	}
}

func TestNewBytes_RejectsMisplacedSeparators(t *testing.T) {
	for _, in := range []string{`[1,]`, `{"a" 1}`, `[1 2]`, `{"a":1,}`, `{,}`, `tru`, `nul`, `fals`, `01`, `-01`, `1.`, `[1.]`} {
		src := NewBytes([]byte(in))
		if _, err := eng.DecodeDocument(src); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestLocationUnknown(t *testing.T) {
	src := NewBytes([]byte(`[1]`))
	tok, err := src.NextToken()
	if err != nil || tok.Offset != -1 || src.Location() != -1 {
		t.Fatalf("unexpected token %+v (%v), location %d", tok, err, src.Location())
	}
}

func TestNewBytes_KeepsLargeNumberLiterals(t *testing.T) {
	v, err := eng.DecodeDocument(NewBytes([]byte(`[1e400, -1e400]`)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := []any{json.Number("1e400"), json.Number("-1e400")}; !reflect.DeepEqual(v, want) {
		t.Fatalf("got %#v", v)
	}
}
