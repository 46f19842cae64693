package jstnlab

import (
	"bytes"

	j "github.com/goccy/go-json"

	"github.com/reoring/jstnlab/jstn"
)

// DataIndent is the indentation used for canonical data documents.
const DataIndent = "\t"

// FormatData renders a decoded data document canonically: tab indented, object
// keys sorted, number literals kept as written and HTML characters left
// unescaped.
func FormatData(v any) (string, error) {
	var buf bytes.Buffer
	enc := j.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", DataIndent)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// FormatDeclaration renders a declaration in the pretty JSTN layout.
func FormatDeclaration(t jstn.Type) string { return string(jstn.GeneratePretty(t)) }
