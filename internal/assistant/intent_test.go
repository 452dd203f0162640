package assistant

import "testing"

func TestClassify_PrimaryRules(t *testing.T) {
	cases := []struct {
		message string
		aim     Aim
	}{
		{"شو هاد التطبيق؟", AimAppInfo},
		{"how do i book an appointment?", AimAppInfo},
		{"مين أسس التطبيق؟", AimFounders},
		{"who made this app", AimFounders},
		{"وين أرخص صالون؟", AimCompare},
		{"compare salons for me", AimCompare},
		{"في صالون قريب مني؟", AimPerLocation},
		{"any salon near me?", AimPerLocation},
		{"حللي لي الصالونات بالتفصيل", AimDeepAnalysis},
		{"analyze the salons in detail", AimDeepAnalysis},
	}

	for _, tc := range cases {
		got := Classify(tc.message)
		if got.Aim != tc.aim {
			t.Fatalf("Classify(%q) = %s, want %s", tc.message, got.Aim, tc.aim)
		}
	}
}

func TestClassify_CheapestNearbyIsComparison(t *testing.T) {
	// Both a COMPARE and a PER_LOCATION keyword present: the comparison
	// rule sits higher in the table and must win.
	got := Classify("أرخص صالون قريب مني")
	if got.Aim != AimCompare {
		t.Fatalf("aim = %s, want %s", got.Aim, AimCompare)
	}
	if got.Confidence != 0.9 {
		t.Fatalf("confidence = %v, want 0.9", got.Confidence)
	}
}

func TestClassify_SecondaryQueryRules(t *testing.T) {
	if got := Classify("بكم صبغة الشعر عندكم؟"); got.Aim != AimCompare {
		t.Fatalf("price question aim = %s, want %s", got.Aim, AimCompare)
	}
	if got := Classify("وين بلاقي صالون منيح؟"); got.Aim != AimPerLocation {
		t.Fatalf("where question aim = %s, want %s", got.Aim, AimPerLocation)
	}

	got := Classify("how much does makeup cost")
	if got.Aim != AimCompare || got.Confidence != 0.6 {
		t.Fatalf("got %s/%v, want COMPARE/0.6", got.Aim, got.Confidence)
	}
}

func TestClassify_FallsBackToGeneral(t *testing.T) {
	got := Classify("مرحبا كيفك")
	if got.Aim != AimGeneral {
		t.Fatalf("aim = %s, want %s", got.Aim, AimGeneral)
	}
	if got.Confidence != 0.5 {
		t.Fatalf("confidence = %v, want 0.5", got.Confidence)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	if got := Classify("COMPARE the salons"); got.Aim != AimCompare {
		t.Fatalf("aim = %s, want %s", got.Aim, AimCompare)
	}
}
