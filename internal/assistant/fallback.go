package assistant

import "unicode"

const (
	fallbackArabic  = "عذراً، لم أستطع معالجة طلبك الآن. حاولي مرة أخرى بعد قليل، أو تصفحي الصالونات مباشرة من التطبيق."
	fallbackEnglish = "Sorry, I couldn't process your request right now. Please try again in a moment, or browse salons directly in the app."
)

// FallbackReply returns a canned reply in the language of the user's
// message, used when the model call fails or returns nothing usable.
func FallbackReply(message string) string {
	if containsArabic(message) {
		return fallbackArabic
	}
	return fallbackEnglish
}

func containsArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}
