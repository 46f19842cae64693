package jstn

import (
	"sort"
	"strings"
)

const prettyIndent = "  "

// Generate renders t in the concise format: no optional whitespace and
// members separated by semicolons. Property names are sorted.
func Generate(t Type) []byte {
	var b strings.Builder
	writeType(&b, t, false, 0)
	return []byte(b.String())
}

// GeneratePretty renders t with one member per line, indented by two spaces
// per nesting level.
func GeneratePretty(t Type) []byte {
	var b strings.Builder
	writeType(&b, t, true, 0)
	return []byte(b.String())
}

func writeType(b *strings.Builder, t Type, pretty bool, depth int) {
	switch t.Kind {
	case KindObject:
		writeObject(b, t, pretty, depth)
	case KindArray:
		b.WriteByte('[')
		if t.Items != nil {
			writeType(b, *t.Items, pretty, depth)
		}
		b.WriteByte(']')
	default:
		b.WriteString(t.Kind.String())
	}
	if t.Optional {
		b.WriteByte('?')
	}
}

func writeObject(b *strings.Builder, t Type, pretty bool, depth int) {
	names := make([]string, 0, len(t.Properties))
	for name := range t.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteByte('{')
	if len(names) == 0 {
		b.WriteByte('}')
		return
	}
	for i, name := range names {
		if pretty {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(prettyIndent, depth+1))
		} else if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(name)
		b.WriteByte(':')
		if pretty {
			b.WriteByte(' ')
		}
		writeType(b, *t.Properties[name], pretty, depth+1)
	}
	if pretty {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(prettyIndent, depth))
	}
	b.WriteByte('}')
}
