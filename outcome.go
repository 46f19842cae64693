package jstnlab

import "fmt"

// Outcome is the validation badge of one buffer.
type Outcome int

const (
	// OutcomeInvalidDocument: the buffer's own text does not parse.
	OutcomeInvalidDocument Outcome = iota
	// OutcomeValidDocument: the buffer parses, but the pair does not validate,
	// either because the counterpart fails to parse or because the data does
	// not satisfy the declaration.
	OutcomeValidDocument
	// OutcomeEverythingValidates: both parse and the data satisfies the
	// declaration.
	OutcomeEverythingValidates
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalidDocument:
		return "invalid-document"
	case OutcomeValidDocument:
		return "valid-document"
	case OutcomeEverythingValidates:
		return "everything-validates"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Outcome) UnmarshalText(b []byte) error {
	for _, c := range [...]Outcome{OutcomeInvalidDocument, OutcomeValidDocument, OutcomeEverythingValidates} {
		if c.String() == string(b) {
			*o = c
			return nil
		}
	}
	return fmt.Errorf("jstnlab: unknown outcome %q", b)
}

// Classify maps one buffer's situation to its outcome. validates is only
// consulted when both sides parsed. A buffer's own failure always wins.
func Classify(selfParsed, otherParsed, validates bool) Outcome {
	switch {
	case !selfParsed:
		return OutcomeInvalidDocument
	case !otherParsed:
		return OutcomeValidDocument
	case validates:
		return OutcomeEverythingValidates
	default:
		return OutcomeValidDocument
	}
}
