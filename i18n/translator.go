package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for issue codes and outcome
// statuses. data fills {placeholders} in the message (for example,
// "document").
type Translator interface {
	Message(code string, data map[string]string) string
}

// Outcome status message keys. The everything-validates message differs per
// document, so it is keyed by role name.
const (
	KeyInvalidDocument         = "outcome.invalid-document"
	KeyValidDocument           = "outcome.valid-document"
	KeyEverythingValidatesJSTN = "outcome.everything-validates.jstn"
	KeyEverythingValidatesJSON = "outcome.everything-validates.json"
)

var dictionaries = map[string]map[string]string{
	"en": {
		KeyInvalidDocument:         "Not a valid {document} document",
		KeyValidDocument:           "Valid {document} document",
		KeyEverythingValidatesJSTN: "Describes the shape of the JSON document!",
		KeyEverythingValidatesJSON: "Valid with respect to the JSTN document!",

		"parse_error":      "parse error",
		"unexpected_token": "unexpected token",
		"duplicate_key":    "duplicate key",
		"truncated":        "truncated",
		"invalid_type":     "invalid type",
		"required":         "required property missing",
		"unknown_key":      "unknown key",
		"non_empty_array":  "array must be empty",
	},
	"ja": {
		KeyInvalidDocument:         "{document} ドキュメントとして不正です",
		KeyValidDocument:           "{document} ドキュメントとして正しい形式です",
		KeyEverythingValidatesJSTN: "JSON ドキュメントの形を正しく記述しています！",
		KeyEverythingValidatesJSON: "JSTN ドキュメントに適合しています！",

		"parse_error":      "解析エラー",
		"unexpected_token": "予期しないトークンです",
		"duplicate_key":    "キーが重複しています",
		"truncated":        "打ち切られました",
		"invalid_type":     "型が不正です",
		"required":         "必須プロパティが不足しています",
		"unknown_key":      "未知のキーです",
		"non_empty_array":  "配列は空でなければなりません",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		if msg, ok = dictionaries["en"][code]; !ok {
			return code
		}
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

// New returns the built-in Translator for lang; unknown languages fall back
// to English.
func New(lang string) Translator {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

// Supported reports whether lang has a built-in dictionary.
func Supported(lang string) bool {
	_, ok := dictionaries[lang]
	return ok
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the default Translator language ("en"/"ja").
func SetLanguage(lang string) { SetTranslator(New(lang)) }

// SetTranslator replaces the default Translator; nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// Default returns the current default Translator.
func Default() Translator {
	mu.RLock()
	defer mu.RUnlock()
	return currentTranslator
}

// T fetches a message for the given code using the default Translator.
func T(code string, data map[string]string) string { return Default().Message(code, data) }
