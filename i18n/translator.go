package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"required":      "required field missing",
		"invalid_type":  "field has the wrong type",
		"nil_input":     "no structure given",
		"id_mismatch":   "structure identifier mismatch",
		"invalid_value": "invalid value",
		"parse_error":   "parse error",
		"unknown_type":  "unknown normative type",
	},
	"ja": {
		"required":      "必須フィールドが不足しています",
		"invalid_type":  "フィールドの型が不正です",
		"nil_input":     "構造体が指定されていません",
		"id_mismatch":   "構造体の識別子が一致しません",
		"invalid_value": "値が不正です",
		"parse_error":   "解析エラー",
		"unknown_type":  "未知のノーマティブタイプです",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if data["expected"] != "" {
		msg += " (expected " + data["expected"]
		if data["got"] != "" {
			msg += ", got " + data["got"]
		}
		msg += ")"
	}
	return msg
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	lang = strings.ToLower(lang)
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
