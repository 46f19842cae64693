package jstnlab

// Buffer holds the text of one document and the parse result of that exact
// text. SetText is its only mutator and re-parses synchronously, so Text and
// Result never disagree once SetText returns.
type Buffer struct {
	role   Role
	text   string
	result ParseResult
	parser parser
}

// NewBuffer creates a buffer for role and parses text immediately. Only
// WithJSONDriver and WithParseOpt affect a standalone buffer.
func NewBuffer(role Role, text string, opts ...Option) *Buffer {
	if !role.valid() {
		panic("jstnlab: NewBuffer with unknown " + role.String())
	}
	cfg := buildConfig(opts)
	b := &Buffer{role: role, parser: cfg.parser}
	b.SetText(text)
	return b
}

// SetText replaces the text and recomputes the parse result from scratch.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.result = b.parser.parse(b.role, text)
}

func (b *Buffer) Role() Role { return b.role }

func (b *Buffer) Text() string { return b.text }

func (b *Buffer) Result() ParseResult { return b.result }

// normalize rewrites a data document canonically; declarations only when
// formatDecl is set. It reports whether the text changed and is a no-op for
// text that does not parse.
func (b *Buffer) normalize(formatDecl bool) bool {
	if !b.result.ok {
		return false
	}
	var text string
	switch b.role {
	case RoleDataDocument:
		out, err := FormatData(b.result.Value)
		if err != nil {
			return false
		}
		text = out
	case RoleTypeDeclaration:
		if !formatDecl {
			return false
		}
		text = FormatDeclaration(b.result.Type)
	}
	if text == b.text {
		return false
	}
	b.SetText(text)
	return true
}
