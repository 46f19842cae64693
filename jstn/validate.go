package jstn

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Mismatch codes reported by Check.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeNonEmptyArray = "non_empty_array"
)

// Mismatch is one place where a value departs from its declaration.
type Mismatch struct {
	Path    string // JSON Pointer; "" is the document root.
	Code    string
	Message string
}

// Valid reports whether v has the shape described by t. v is a decoded JSON
// value: map[string]any, []any, string, json.Number or another Go number,
// bool, or nil. An optional scalar type (string?, number?, boolean?) also
// accepts null; optional arrays and objects do not, they only make an
// object property omissible.
func Valid(t Type, v any) bool {
	w := walker{stopAtFirst: true}
	w.check(t, v, "")
	return len(w.out) == 0
}

// Check returns every mismatch between t and v, ordered by path. It returns
// nil exactly when Valid(t, v) is true.
func Check(t Type, v any) []Mismatch {
	var w walker
	w.check(t, v, "")
	return w.out
}

type walker struct {
	stopAtFirst bool
	out         []Mismatch
}

func (w *walker) done() bool { return w.stopAtFirst && len(w.out) > 0 }

func (w *walker) report(path, code, msg string) {
	w.out = append(w.out, Mismatch{Path: path, Code: code, Message: msg})
}

func (w *walker) check(t Type, v any, path string) {
	if v == nil && acceptsNull(t) {
		return
	}
	switch t.Kind {
	case KindString:
		if _, ok := v.(string); !ok {
			w.typeMismatch(t, v, path)
		}
	case KindNumber:
		if !isNumber(v) {
			w.typeMismatch(t, v, path)
		}
	case KindBoolean:
		if _, ok := v.(bool); !ok {
			w.typeMismatch(t, v, path)
		}
	case KindNull:
		w.typeMismatch(t, v, path)
	case KindArray:
		w.checkArray(t, v, path)
	case KindObject:
		w.checkObject(t, v, path)
	default:
		w.report(path, CodeInvalidType, fmt.Sprintf("unknown kind %s", t.Kind))
	}
}

func acceptsNull(t Type) bool {
	switch t.Kind {
	case KindNull:
		return true
	case KindString, KindNumber, KindBoolean:
		return t.Optional
	}
	return false
}

func (w *walker) checkArray(t Type, v any, path string) {
	arr, ok := v.([]any)
	if !ok {
		w.typeMismatch(t, v, path)
		return
	}
	if t.Items == nil {
		if len(arr) > 0 {
			w.report(path, CodeNonEmptyArray, fmt.Sprintf("expected an empty array, got %d elements", len(arr)))
		}
		return
	}
	for i, elem := range arr {
		w.check(*t.Items, elem, path+"/"+strconv.Itoa(i))
		if w.done() {
			return
		}
	}
}

func (w *walker) checkObject(t Type, v any, path string) {
	obj, ok := v.(map[string]any)
	if !ok {
		w.typeMismatch(t, v, path)
		return
	}
	keys := make([]string, 0, len(obj)+len(t.Properties))
	for k := range obj {
		keys = append(keys, k)
	}
	for k := range t.Properties {
		if _, seen := obj[k]; !seen {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		child := path + "/" + escapePointer(k)
		prop, declared := t.Properties[k]
		val, present := obj[k]
		switch {
		case !declared:
			w.report(child, CodeUnknownKey, fmt.Sprintf("property %q is not declared", k))
		case !present:
			if !prop.Optional {
				w.report(child, CodeRequired, fmt.Sprintf("required property %q is missing", k))
			}
		default:
			w.check(*prop, val, child)
		}
		if w.done() {
			return
		}
	}
}

func (w *walker) typeMismatch(t Type, v any, path string) {
	w.report(path, CodeInvalidType, fmt.Sprintf("expected %s, got %s", t.Kind, describe(v)))
}

func isNumber(v any) bool {
	switch v.(type) {
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func describe(v any) string {
	switch {
	case v == nil:
		return "null"
	case isNumber(v):
		return "number"
	}
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(s string) string { return pointerEscaper.Replace(s) }
