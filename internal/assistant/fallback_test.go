package assistant

import "testing"

func TestFallbackReply_MatchesLanguage(t *testing.T) {
	if got := FallbackReply("وين أقرب صالون؟"); got != fallbackArabic {
		t.Fatalf("arabic message got %q", got)
	}
	if got := FallbackReply("where is the nearest salon?"); got != fallbackEnglish {
		t.Fatalf("english message got %q", got)
	}
	// Mixed text counts as Arabic.
	if got := FallbackReply("book موعد please"); got != fallbackArabic {
		t.Fatalf("mixed message got %q", got)
	}
}
