// Package jstnlab keeps a JSTN type declaration and a JSON data document side
// by side and reports, after every edit, whether each one parses and whether
// the data satisfies the declared type.
//
// Design policy:
//   - The Engine owns both Buffers and is their only writer. Edit is the single
//     text mutator; Normalize is the commit/blur formatting step.
//   - Parse failures never escape as errors: they become an InvalidDocument
//     outcome with Issues attached to the buffer's ParseResult.
//   - Outcomes are derived on read from the two parse results (Classify), so
//     they can never disagree with the current text.
//   - The type library lives under jstn/, JSON drivers under source/, the HTTP
//     surface under internal/server and the CLI under cmd/jstnlab.
//
// Typical usage:
//
//	e := jstnlab.NewEngine("string?", `"foo bar"`)
//	e.Edit(jstnlab.RoleDataDocument, "42")
//	e.Outcome(jstnlab.RoleDataDocument) // OutcomeValidDocument
//	snap := e.Snapshot()
package jstnlab
