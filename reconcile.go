package jstnlab

import "github.com/reoring/jstnlab/jstn"

// Engine reconciles a type declaration buffer with a data document buffer.
//
// An Engine is not safe for concurrent use: it expects one logical thread of
// user events, each running to completion before the next. Callers sharing
// an Engine across goroutines must serialize access themselves.
type Engine struct {
	buffers  [2]*Buffer
	initial  [2]string
	cfg      config
	revision uint64

	subs    map[int]func(Snapshot)
	nextSub int
}

// NewEngine creates an engine with both buffers parsed from the given texts.
func NewEngine(typeDecl, dataDoc string, opts ...Option) *Engine {
	cfg := buildConfig(opts)
	e := &Engine{cfg: cfg, initial: [2]string{typeDecl, dataDoc}}
	e.buffers[RoleTypeDeclaration] = &Buffer{role: RoleTypeDeclaration, parser: cfg.parser}
	e.buffers[RoleDataDocument] = &Buffer{role: RoleDataDocument, parser: cfg.parser}
	e.buffers[RoleTypeDeclaration].SetText(typeDecl)
	e.buffers[RoleDataDocument].SetText(dataDoc)
	return e
}

func (e *Engine) buffer(role Role) *Buffer {
	if !role.valid() {
		panic("jstnlab: unknown " + role.String())
	}
	return e.buffers[role]
}

// Edit replaces the text of one buffer, re-parses it and publishes a new
// snapshot. It is the only way to change buffer text besides Normalize and
// Reset. Parse failures are reflected in the outcome, never returned.
func (e *Engine) Edit(role Role, text string) {
	e.buffer(role).SetText(text)
	e.changed()
}

// Normalize handles the commit/blur signal for role. A parsed data document
// is rewritten in canonical form; a parsed declaration only when the engine
// was built WithDeclarationFormatting. Text that fails to parse is left
// alone. It reports whether the text changed; subscribers are only notified
// on change.
func (e *Engine) Normalize(role Role) bool {
	if !e.buffer(role).normalize(e.cfg.formatDecl) {
		return false
	}
	e.changed()
	return true
}

// Reset restores both buffers to the texts the engine was created with.
func (e *Engine) Reset() {
	for _, r := range Roles {
		e.buffers[r].SetText(e.initial[r])
	}
	e.changed()
}

// Text returns the current raw text of role.
func (e *Engine) Text(role Role) string { return e.buffer(role).Text() }

// Result returns the current parse result of role.
func (e *Engine) Result(role Role) ParseResult { return e.buffer(role).Result() }

// Revision counts published changes, starting at zero.
func (e *Engine) Revision() uint64 { return e.revision }

// Outcome derives the badge for role from the two current parse results.
func (e *Engine) Outcome(role Role) Outcome {
	self, other := e.buffer(role).result, e.buffer(role.Other()).result
	if !self.ok || !other.ok {
		return Classify(self.ok, other.ok, false)
	}
	return Classify(true, true, e.validates())
}

// validates runs the type library predicate. Both buffers must have parsed.
// A panic inside the predicate is a defect in the library and is not
// recovered.
func (e *Engine) validates() bool {
	return jstn.Valid(e.buffers[RoleTypeDeclaration].result.Type, e.buffers[RoleDataDocument].result.Value)
}

// Subscribe registers fn to receive a snapshot after every change. fn runs
// synchronously inside the mutating call. The returned func unsubscribes.
func (e *Engine) Subscribe(fn func(Snapshot)) (cancel func()) {
	if e.subs == nil {
		e.subs = make(map[int]func(Snapshot))
	}
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	return func() { delete(e.subs, id) }
}

func (e *Engine) changed() {
	e.revision++
	if len(e.subs) == 0 {
		return
	}
	snap := e.Snapshot()
	for _, fn := range e.subs {
		fn(snap)
	}
}
