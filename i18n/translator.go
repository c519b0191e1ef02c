package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "enum").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			tmpl = "型が不正です: {expected} が必要です"
		case "invalid_enum":
			tmpl = "{expected} のいずれかを指定してください"
		case "invalid_value":
			tmpl = "{enum} の値ではありません: {value}"
		case "parse_error":
			tmpl = "JSON の形式が不正です: {detail}"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			tmpl = "invalid type: expected {expected}"
		case "invalid_enum":
			tmpl = "expected one of {expected}"
		case "invalid_value":
			tmpl = "{value} is not a declared {enum} variant"
		case "parse_error":
			tmpl = "malformed JSON: {detail}"
		}
	}
	if tmpl == "" {
		return code
	}
	return expand(tmpl, data)
}

// expand replaces {key} placeholders with values from data. Unknown keys are
// left as-is.
func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
