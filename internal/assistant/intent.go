package assistant

import "strings"

// Aim is the coarse intent of a consultant message.
type Aim string

const (
	AimAppInfo      Aim = "APP_INFO"
	AimFounders     Aim = "FOUNDERS"
	AimCompare      Aim = "COMPARE"
	AimPerLocation  Aim = "PER_LOCATION"
	AimDeepAnalysis Aim = "DEEP_ANALYSIS"
	AimGeneral      Aim = "GENERAL"
)

type Classification struct {
	Aim        Aim     `json:"aim"`
	Confidence float64 `json:"confidence"`
}

// aimRule maps keywords to an aim with a fixed confidence. Rules are
// evaluated top to bottom and the first hit wins, so more specific aims
// must sit above broader ones (COMPARE above PER_LOCATION: a message
// asking for the cheapest nearby salon is a comparison).
type aimRule struct {
	keywords   []string
	aim        Aim
	confidence float64
}

var aimRules = []aimRule{
	{
		keywords: []string{
			"ما هو التطبيق", "عن التطبيق", "شو هاد التطبيق", "كيف أحجز", "كيف احجز",
			"what is this app", "about the app", "how do i book", "how to book",
		},
		aim:        AimAppInfo,
		confidence: 0.95,
	},
	{
		keywords: []string{
			"المؤسس", "المؤسسين", "من أسس", "مين أسس", "مين عمل التطبيق",
			"founder", "founders", "who made", "who created",
		},
		aim:        AimFounders,
		confidence: 0.95,
	},
	{
		keywords: []string{
			"أرخص", "ارخص", "الأرخص", "أغلى", "اغلى", "قارن", "مقارنة", "أفضل سعر", "افضل سعر",
			"cheapest", "cheaper", "compare", "comparison", "best price",
		},
		aim:        AimCompare,
		confidence: 0.9,
	},
	{
		keywords: []string{
			"قريب", "قريبة", "بالقرب", "جنبي", "في منطقتي", "في مدينتي",
			"nearby", "near me", "closest", "around me", "in my city",
		},
		aim:        AimPerLocation,
		confidence: 0.85,
	},
	{
		keywords: []string{
			"حلل", "حللي", "تحليل", "بالتفصيل", "أيهم أفضل", "ايهم افضل",
			"analyze", "analysis", "in detail", "detailed", "break down",
		},
		aim:        AimDeepAnalysis,
		confidence: 0.8,
	},
}

// queryRules is the secondary classifier: weaker signals consulted only
// when no primary rule matched.
var queryRules = []aimRule{
	{
		keywords:   []string{"سعر", "أسعار", "اسعار", "تكلفة", "بكم", "price", "prices", "cost", "how much"},
		aim:        AimCompare,
		confidence: 0.6,
	},
	{
		keywords:   []string{"وين", "فين", "أين", "where", "location"},
		aim:        AimPerLocation,
		confidence: 0.6,
	},
}

// Classify maps a free-text message to an aim. First matching primary
// rule wins; then the secondary query rules; then GENERAL.
func Classify(message string) Classification {
	msg := strings.ToLower(message)

	for _, rules := range [][]aimRule{aimRules, queryRules} {
		for _, rule := range rules {
			for _, kw := range rule.keywords {
				if strings.Contains(msg, kw) {
					return Classification{Aim: rule.aim, Confidence: rule.confidence}
				}
			}
		}
	}

	return Classification{Aim: AimGeneral, Confidence: 0.5}
}
