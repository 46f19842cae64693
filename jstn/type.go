// Package jstn implements JSON Type Notation: a small declaration language
// describing the shape of JSON documents.
//
// A declaration is one of the primitive names (string, number, boolean,
// null), an array `[T]` (or `[]` for an always-empty array), or an object
// `{ name: T; other: T }` whose members are separated by semicolons or
// newlines. Any type may be suffixed with `?` to mark it optional.
//
//	t, err := jstn.Parse("{ name: string; tags: [string]? }")
//	ok := jstn.Valid(t, value)
package jstn

import (
	"encoding/json"
	"fmt"
)

// Kind is the primitive JSON type a Type describes.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindNull
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Type is a parsed declaration.
type Type struct {
	Kind       Kind
	Optional   bool
	Properties map[string]*Type // KindObject only.
	Items      *Type            // KindArray only; nil means the array must be empty.
}

// String renders t in the concise declaration format.
func (t Type) String() string { return string(Generate(t)) }

// MarshalJSON encodes t as a JSON string holding its concise declaration.
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a JSON string holding a declaration.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("jstn: type must be a JSON string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Equal reports whether a and b describe the same shape.
func Equal(a, b Type) bool {
	if a.Kind != b.Kind || a.Optional != b.Optional {
		return false
	}
	switch a.Kind {
	case KindArray:
		if (a.Items == nil) != (b.Items == nil) {
			return false
		}
		return a.Items == nil || Equal(*a.Items, *b.Items)
	case KindObject:
		if len(a.Properties) != len(b.Properties) {
			return false
		}
		for name, at := range a.Properties {
			bt, ok := b.Properties[name]
			if !ok || !Equal(*at, *bt) {
				return false
			}
		}
	}
	return true
}
