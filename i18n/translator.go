package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for error codes.
// data carries the parameters interpolated into "{name}" placeholders (for
// example "expected", "min" or "pattern").
type Translator interface {
	Message(code string, data map[string]string) string
}

var english = map[string]string{
	"invalid_type":    "Expected {expected}",
	"required":        "Expected required property",
	"unknown_key":     "Unexpected property",
	"too_short":       "Expected string length greater or equal to {min}",
	"too_long":        "Expected string length less or equal to {max}",
	"pattern":         "Expected string to match pattern {pattern}",
	"invalid_format":  "Expected string to match format '{format}'",
	"too_small":       "Expected {expected} to be greater or equal to {min}",
	"not_greater":     "Expected {expected} to be greater than {min}",
	"too_big":         "Expected {expected} to be less or equal to {max}",
	"not_less":        "Expected {expected} to be less than {max}",
	"not_multiple_of": "Expected {expected} to be a multiple of {multipleOf}",
	"too_few_items":   "Expected array length greater or equal to {min}",
	"too_many_items":  "Expected array length less or equal to {max}",
	"duplicate_items": "Expected array elements to be unique",
	"invalid_literal": "Expected {literal}",
	"union_no_match":  "not a type the union recognizes",
	"invalid_value":   "Invalid value",
}

var japanese = map[string]string{
	"invalid_type":    "{expected} 型が必要です",
	"required":        "必須プロパティが不足しています",
	"unknown_key":     "未知のキーです",
	"too_short":       "文字列の長さは {min} 以上である必要があります",
	"too_long":        "文字列の長さは {max} 以下である必要があります",
	"pattern":         "文字列はパターン {pattern} に一致する必要があります",
	"invalid_format":  "文字列は形式 '{format}' に一致する必要があります",
	"too_small":       "{expected} は {min} 以上である必要があります",
	"not_greater":     "{expected} は {min} より大きい必要があります",
	"too_big":         "{expected} は {max} 以下である必要があります",
	"not_less":        "{expected} は {max} より小さい必要があります",
	"not_multiple_of": "{expected} は {multipleOf} の倍数である必要があります",
	"too_few_items":   "配列の長さは {min} 以上である必要があります",
	"too_many_items":  "配列の長さは {max} 以下である必要があります",
	"duplicate_items": "配列の要素は一意である必要があります",
	"invalid_literal": "{literal} が必要です",
	"union_no_match":  "ユニオンが認識できない型です",
	"invalid_value":   "不正な値です",
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	dict := english
	if t.lang == "ja" {
		dict = japanese
	}
	tmpl, ok := dict[code]
	if !ok {
		if tmpl, ok = english[code]; !ok {
			return code
		}
	}
	return Interpolate(tmpl, data)
}

// Interpolate replaces each "{name}" placeholder in tmpl with data[name].
// Placeholders without a value are left untouched.
func Interpolate(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). A nil Translator restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
