package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "read_only":
			return "読み取り専用プロパティです"
		case "too_small":
			return "小さすぎます"
		case "too_big":
			return "大きすぎます"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "pattern":
			return "パターンに一致しません"
		case "multiple_of":
			return "倍数ではありません"
		case "not_unique":
			return "要素が重複しています"
		case "parse_error":
			return "解析エラー"
		case "invalid_descriptor":
			return "型記述子が不正です"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required property missing"
		case "unknown_key":
			return "unknown key"
		case "read_only":
			return "property is read only"
		case "too_small":
			return "too small"
		case "too_big":
			return "too big"
		case "too_short":
			return "too short"
		case "too_long":
			return "too long"
		case "pattern":
			return "does not match pattern"
		case "multiple_of":
			return "not a multiple"
		case "not_unique":
			return "items are not unique"
		case "parse_error":
			return "parse error"
		case "invalid_descriptor":
			return "invalid type descriptor"
		}
	}
	return code
}

var (
	mu      sync.RWMutex
	current Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in dictionary to the given language tag.
func SetLanguage(lang string) {
	mu.Lock()
	current = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the active Translator; nil values are ignored.
func SetTranslator(t Translator) {
	if t == nil {
		return
	}
	mu.Lock()
	current = t
	mu.Unlock()
}

// T renders the message for code using the active Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	t := current
	mu.RUnlock()
	return t.Message(code, data)
}
