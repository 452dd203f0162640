package assistant

import (
	"strings"
	"testing"
)

func TestPromptBuilder_KeepsSectionOrder(t *testing.T) {
	b := NewPromptBuilder().
		Add("first", "one").
		Add("second", "two").
		Add("third", "three")

	got := b.Sections()
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sections = %v, want %v", got, want)
		}
	}

	out := b.Build()
	if strings.Index(out, "one") > strings.Index(out, "two") {
		t.Fatal("section bodies rendered out of order")
	}
}

func TestPromptBuilder_SkipsEmptySections(t *testing.T) {
	b := NewPromptBuilder().
		Add("kept", "body").
		Add("empty", "   ")

	if len(b.Sections()) != 1 {
		t.Fatalf("sections = %v, want only kept", b.Sections())
	}
}

func TestBuildConsultPrompt_Layout(t *testing.T) {
	cls := Classification{Aim: AimCompare, Confidence: 0.9}
	slots := Slots{City: "نابلس", Gender: "female", Service: "haircut"}
	history := []Exchange{{User: "مرحبا", Assistant: "أهلاً"}}

	out := BuildConsultPrompt("أرخص صالون؟", cls, slots, "- صالون س", history)

	for _, section := range []string{
		sectionPersona, sectionProfile, sectionHistory,
		sectionSalons, sectionInstructions, sectionUrgency, sectionQuestion,
	} {
		if !strings.Contains(out, "## "+section) {
			t.Fatalf("prompt missing section %q:\n%s", section, out)
		}
	}

	if !strings.Contains(out, "نابلس") {
		t.Fatal("prompt missing the extracted city")
	}
	if !strings.Contains(out, "أرخص صالون؟") {
		t.Fatal("prompt missing the user question")
	}
}

func TestBuildConsultPrompt_NoUrgencyForGeneral(t *testing.T) {
	cls := Classification{Aim: AimGeneral, Confidence: 0.5}
	slots := Slots{City: DefaultCity, Gender: DefaultGender}

	out := BuildConsultPrompt("مرحبا", cls, slots, "", nil)

	if strings.Contains(out, "## "+sectionUrgency) {
		t.Fatal("urgency section leaked into a general prompt")
	}
	if strings.Contains(out, "## "+sectionSalons) {
		t.Fatal("empty salon context must not render a section")
	}
}
