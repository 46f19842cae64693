package jstn_test

import (
	"errors"
	"testing"

	"github.com/reoring/jstnlab/jstn"
)

func TestParse_Declarations(t *testing.T) {
	cases := []struct {
		src  string
		want jstn.Type
	}{
		{"string", jstn.Type{Kind: jstn.KindString}},
		{"string?", jstn.Type{Kind: jstn.KindString, Optional: true}},
		{"Number", jstn.Type{Kind: jstn.KindNumber}},
		{"boolean?", jstn.Type{Kind: jstn.KindBoolean, Optional: true}},
		{"null", jstn.Type{Kind: jstn.KindNull}},
		{"\n  string\n", jstn.Type{Kind: jstn.KindString}},
		{"[]", jstn.Type{Kind: jstn.KindArray}},
		{"[number]?", jstn.Type{Kind: jstn.KindArray, Optional: true, Items: &jstn.Type{Kind: jstn.KindNumber}}},
		{"[number?]", jstn.Type{Kind: jstn.KindArray, Items: &jstn.Type{Kind: jstn.KindNumber, Optional: true}}},
		{"{}", jstn.Type{Kind: jstn.KindObject, Properties: map[string]*jstn.Type{}}},
		{"{key: string}", jstn.Type{Kind: jstn.KindObject, Properties: map[string]*jstn.Type{
			"key": {Kind: jstn.KindString},
		}}},
		{"{name:string;age:number?}", jstn.Type{Kind: jstn.KindObject, Properties: map[string]*jstn.Type{
			"name": {Kind: jstn.KindString},
			"age":  {Kind: jstn.KindNumber, Optional: true},
		}}},
		{"{\n\tname:string\n\tage:number?\n}", jstn.Type{Kind: jstn.KindObject, Properties: map[string]*jstn.Type{
			"name": {Kind: jstn.KindString},
			"age":  {Kind: jstn.KindNumber, Optional: true},
		}}},
		{"{\n\tname:string;\n\tage:number?;\n}", jstn.Type{Kind: jstn.KindObject, Properties: map[string]*jstn.Type{
			"name": {Kind: jstn.KindString},
			"age":  {Kind: jstn.KindNumber, Optional: true},
		}}},
		{"{author:string;works:[{\n   title:string\n   year:   number?;\n   classic:boolean;}]}", jstn.Type{Kind: jstn.KindObject, Properties: map[string]*jstn.Type{
			"author": {Kind: jstn.KindString},
			"works": {Kind: jstn.KindArray, Items: &jstn.Type{Kind: jstn.KindObject, Properties: map[string]*jstn.Type{
				"title":   {Kind: jstn.KindString},
				"year":    {Kind: jstn.KindNumber, Optional: true},
				"classic": {Kind: jstn.KindBoolean},
			}}},
		}}},
		{"{string: number}", jstn.Type{Kind: jstn.KindObject, Properties: map[string]*jstn.Type{
			"string": {Kind: jstn.KindNumber},
		}}},
	}
	for _, c := range cases {
		got, err := jstn.Parse(c.src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.src, err)
		}
		if !jstn.Equal(got, c.want) {
			t.Fatalf("Parse(%q) = %s, want %s", c.src, got, c.want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"{{bad",
		"strin",
		"string string",
		"[string",
		"{name string}",
		"{name: string age: number}",
		"{name: string; name: number}",
		"{name: }",
		"#",
		"string??",
	}
	for _, src := range cases {
		_, err := jstn.Parse(src)
		if err == nil {
			t.Fatalf("Parse(%q): expected error", src)
		}
		var pe *jstn.ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Parse(%q): expected *ParseError, got %T", src, err)
		}
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := jstn.Parse("{\n  name: string\n  age number\n}")
	var pe *jstn.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Pos.Line != 3 || pe.Pos.Column != 7 {
		t.Fatalf("unexpected position %d:%d (%v)", pe.Pos.Line, pe.Pos.Column, err)
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	jstn.MustParse("[")
}
