package jstnlab

import (
	"github.com/reoring/jstnlab/i18n"
	"github.com/reoring/jstnlab/jstn"
)

// Snapshot is an immutable view of both buffers at one revision, shaped for
// the presentation layer.
type Snapshot struct {
	Revision        uint64       `json:"revision"`
	TypeDeclaration DocumentView `json:"jstn"`
	DataDocument    DocumentView `json:"json"`
	// Validates is true when both outcomes are OutcomeEverythingValidates.
	Validates bool `json:"validates"`
	// Mismatches explains a ValidDocument pair in which both sides parsed.
	Mismatches Issues `json:"mismatches,omitempty"`
}

// DocumentView is what the presentation layer shows for one buffer.
type DocumentView struct {
	Role     Role    `json:"role"`
	Text     string  `json:"text"`
	Outcome  Outcome `json:"outcome"`
	Message  string  `json:"message"`
	Issues   Issues  `json:"issues,omitempty"`
	Warnings Issues  `json:"warnings,omitempty"`
}

// View returns the DocumentView for role.
func (s Snapshot) View(role Role) DocumentView {
	if role == RoleTypeDeclaration {
		return s.TypeDeclaration
	}
	return s.DataDocument
}

// Snapshot captures the current state. The type library predicate runs at
// most once, and Check only when the pair fails to validate.
func (e *Engine) Snapshot() Snapshot {
	tr := e.cfg.translator
	if tr == nil {
		tr = i18n.Default()
	}
	decl, data := e.buffers[RoleTypeDeclaration].result, e.buffers[RoleDataDocument].result

	validates := false
	var mismatches Issues
	if decl.ok && data.ok {
		validates = e.validates()
		if !validates {
			mismatches = issuesFromMismatches(jstn.Check(decl.Type, data.Value))
		}
	}

	view := func(role Role) DocumentView {
		b := e.buffers[role]
		o := Classify(b.result.ok, e.buffers[role.Other()].result.ok, validates)
		return DocumentView{
			Role:     role,
			Text:     b.text,
			Outcome:  o,
			Message:  StatusMessage(tr, role, o),
			Issues:   localize(tr, b.result.Issues),
			Warnings: localize(tr, b.result.Warnings),
		}
	}
	return Snapshot{
		Revision:        e.revision,
		TypeDeclaration: view(RoleTypeDeclaration),
		DataDocument:    view(RoleDataDocument),
		Validates:       validates,
		Mismatches:      mismatches,
	}
}

// localize returns a copy of iss with Summary set from tr. The buffer's own
// issues are left untouched.
func localize(tr i18n.Translator, iss Issues) Issues {
	if len(iss) == 0 {
		return nil
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		it.Summary = tr.Message(it.Code, nil)
		out[i] = it
	}
	return out
}

// StatusMessage is the localized status line shown under a buffer.
func StatusMessage(tr i18n.Translator, role Role, o Outcome) string {
	data := map[string]string{"document": role.Title()}
	switch o {
	case OutcomeInvalidDocument:
		return tr.Message(i18n.KeyInvalidDocument, data)
	case OutcomeValidDocument:
		return tr.Message(i18n.KeyValidDocument, data)
	case OutcomeEverythingValidates:
		if role == RoleTypeDeclaration {
			return tr.Message(i18n.KeyEverythingValidatesJSTN, data)
		}
		return tr.Message(i18n.KeyEverythingValidatesJSON, data)
	}
	return o.String()
}
