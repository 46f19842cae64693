package jstnlab

import "github.com/reoring/jstnlab/i18n"

// Option configures an Engine or a standalone Buffer.
type Option func(*config)

type config struct {
	parser     parser
	formatDecl bool
	translator i18n.Translator
}

func buildConfig(opts []Option) config {
	var c config
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	return c
}

// WithJSONDriver pins the driver used for data documents. Without it the
// process-wide DefaultJSONDriver is consulted on every parse.
func WithJSONDriver(d JSONDriver) Option { return func(c *config) { c.parser.driver = d } }

// WithParseOpt sets data document enforcement (duplicate keys, depth, size).
func WithParseOpt(opt ParseOpt) Option { return func(c *config) { c.parser.opt = opt } }

// WithDeclarationFormatting makes Normalize on the type declaration rewrite it
// in the pretty JSTN layout. By default declarations are left as typed.
func WithDeclarationFormatting(on bool) Option { return func(c *config) { c.formatDecl = on } }

// WithTranslator localizes snapshot status messages. Defaults to
// i18n.Default() at snapshot time.
func WithTranslator(tr i18n.Translator) Option { return func(c *config) { c.translator = tr } }
