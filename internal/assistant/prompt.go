package assistant

import (
	"fmt"
	"strings"
)

// Section is a named block of the final prompt. Sections are rendered in
// the order they were added, so the builder output is reproducible and a
// single section can be replaced in tests without string surgery.
type Section struct {
	Name string
	Body string
}

type PromptBuilder struct {
	sections []Section
}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

func (b *PromptBuilder) Add(name, body string) *PromptBuilder {
	if strings.TrimSpace(body) == "" {
		return b
	}
	b.sections = append(b.sections, Section{Name: name, Body: body})
	return b
}

func (b *PromptBuilder) Addf(name, format string, args ...any) *PromptBuilder {
	return b.Add(name, fmt.Sprintf(format, args...))
}

func (b *PromptBuilder) Build() string {
	var sb strings.Builder
	for i, s := range b.sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("## ")
		sb.WriteString(s.Name)
		sb.WriteString("\n")
		sb.WriteString(strings.TrimSpace(s.Body))
	}
	return sb.String()
}

// Sections returns the ordered section names, used by tests to assert
// the prompt layout without depending on the exact wording.
func (b *PromptBuilder) Sections() []string {
	names := make([]string, len(b.sections))
	for i, s := range b.sections {
		names[i] = s.Name
	}
	return names
}

const (
	sectionPersona      = "persona"
	sectionProfile      = "user_profile"
	sectionHistory      = "conversation"
	sectionSalons       = "salon_context"
	sectionInstructions = "instructions"
	sectionUrgency      = "urgent_availability"
	sectionQuestion     = "question"
)

const personaText = `أنت مستشارة صالونات ذكية تساعد المستخدمين على اختيار صالون التجميل المناسب.
أجيبي بنفس لغة المستخدم (عربية أو إنجليزية)، بإيجاز وبنبرة ودودة.
اعتمدي فقط على بيانات الصالونات المرفقة، ولا تخترعي أسماء أو أسعاراً غير موجودة.`

var aimInstructions = map[Aim]string{
	AimAppInfo:      "اشرحي ما يقدمه التطبيق: حجز مواعيد، استكشاف صالونات حسب المدينة، ومساعدة ذكية للاختيار.",
	AimFounders:     "عرّفي بفريق التطبيق بإيجاز دون تفاصيل شخصية غير موجودة في البيانات.",
	AimCompare:      "قارني الصالونات المرفقة حسب السعر والتقييم، ورتبيها من الأنسب للأقل، مع ذكر الأرخص صراحة.",
	AimPerLocation:  "ركزي على الصالونات في مدينة المستخدم، واذكري حالتها الحالية (مفتوح/مغلق) إن توفرت.",
	AimDeepAnalysis: "قدمي تحليلاً مفصلاً: الخدمات، الأسعار، التقييمات، وأوقات العمل، ثم توصية واحدة واضحة.",
	AimGeneral:      "أجيبي على السؤال مباشرة، وإن كان خارج نطاق الصالونات فاعتذري بلطف ووجهي المستخدم لما يقدمه التطبيق.",
}

// BuildConsultPrompt assembles the full prompt for one chat turn.
func BuildConsultPrompt(message string, cls Classification, slots Slots, salonContext string, history []Exchange) string {
	b := NewPromptBuilder().
		Add(sectionPersona, personaText).
		Addf(sectionProfile, "المدينة: %s\nالجمهور: %s\nالخدمة المطلوبة: %s", slots.City, slots.Gender, orDash(slots.Service))

	if len(history) > 0 {
		var hb strings.Builder
		for _, ex := range history {
			fmt.Fprintf(&hb, "المستخدم: %s\nالمساعدة: %s\n", ex.User, ex.Assistant)
		}
		b.Add(sectionHistory, hb.String())
	}

	b.Add(sectionSalons, salonContext)
	b.Add(sectionInstructions, aimInstructions[cls.Aim])

	if cls.Aim == AimPerLocation || cls.Aim == AimCompare {
		b.Add(sectionUrgency, "إن سأل المستخدم عن صالون مفتوح الآن، قدّمي الصالونات المفتوحة أو التي ستفتح قريباً أولاً.")
	}

	return b.Addf(sectionQuestion, "%s", message).Build()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
