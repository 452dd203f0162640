package assistant

import (
	"strings"

	"github.com/salonat-app/salon-api/internal/models"
)

// Slots are the parameters extracted from a consultant message.
type Slots struct {
	Service      string `json:"service,omitempty"`
	City         string `json:"city"`
	Gender       string `json:"gender"`
	BudgetIntent string `json:"budget_intent,omitempty"`
}

// City and gender always resolve to something: message first, then the
// stored profile, then the platform defaults. Returning empty slots and
// making every caller re-check would push the fallback into a dozen
// query sites.
const (
	DefaultCity   = "رام الله"
	DefaultGender = "female"
)

const (
	BudgetLow  = "low"
	BudgetHigh = "high"
)

// slotAlias maps one message spelling to its canonical value. Aliases
// are checked top to bottom and the first hit wins, so a message naming
// two cities resolves the same way on every run.
type slotAlias struct {
	keyword   string
	canonical string
}

var cityAliases = []slotAlias{
	{"رام الله", "رام الله"},
	{"رامالله", "رام الله"},
	{"ramallah", "رام الله"},
	{"نابلس", "نابلس"},
	{"nablus", "نابلس"},
	{"الخليل", "الخليل"},
	{"hebron", "الخليل"},
	{"بيت لحم", "بيت لحم"},
	{"bethlehem", "بيت لحم"},
	{"جنين", "جنين"},
	{"jenin", "جنين"},
	{"طولكرم", "طولكرم"},
	{"tulkarem", "طولكرم"},
	{"tulkarm", "طولكرم"},
	{"أريحا", "أريحا"},
	{"اريحا", "أريحا"},
	{"jericho", "أريحا"},
	{"القدس", "القدس"},
	{"jerusalem", "القدس"},
	{"غزة", "غزة"},
	{"gaza", "غزة"},
}

var serviceKeywords = []slotAlias{
	{"قص", "haircut"},
	{"قصة", "haircut"},
	{"haircut", "haircut"},
	{"صبغة", "hair color"},
	{"صبغ", "hair color"},
	{"color", "hair color"},
	{"dye", "hair color"},
	{"بروتين", "protein treatment"},
	{"protein", "protein treatment"},
	{"مكياج", "makeup"},
	{"ميك اب", "makeup"},
	{"makeup", "makeup"},
	{"أظافر", "nails"},
	{"اظافر", "nails"},
	{"مناكير", "nails"},
	{"nails", "nails"},
	{"manicure", "nails"},
	{"حواجب", "eyebrows"},
	{"eyebrows", "eyebrows"},
	{"عروس", "bridal"},
	{"عرايس", "bridal"},
	{"bridal", "bridal"},
	{"مساج", "massage"},
	{"massage", "massage"},
	{"تنظيف بشرة", "facial"},
	{"بشرة", "facial"},
	{"facial", "facial"},
	{"حلاقة", "shave"},
	{"ذقن", "beard"},
	{"لحية", "beard"},
	{"beard", "beard"},
}

var maleKeywords = []string{"رجال", "رجالي", "شباب", "حلاق", "men", "male", "barber"}
var femaleKeywords = []string{"نساء", "نسائي", "سيدات", "بنات", "women", "female", "ladies"}

var lowBudgetKeywords = []string{"رخيص", "رخيصة", "أرخص", "ارخص", "اقتصادي", "cheap", "cheapest", "budget", "affordable"}
var highBudgetKeywords = []string{"فاخر", "فخم", "راقي", "غالي", "أغلى", "luxury", "premium", "high end", "high-end"}

// ExtractSlots pulls service, city, gender and budget intent out of a
// message, falling back to the customer profile and then the defaults.
func ExtractSlots(message string, profile *models.Customer) Slots {
	msg := strings.ToLower(message)

	slots := Slots{}

	for _, a := range cityAliases {
		if strings.Contains(msg, a.keyword) {
			slots.City = a.canonical
			break
		}
	}
	if slots.City == "" && profile != nil && profile.City != "" {
		slots.City = profile.City
	}
	if slots.City == "" {
		slots.City = DefaultCity
	}

	for _, kw := range maleKeywords {
		if strings.Contains(msg, kw) {
			slots.Gender = "male"
			break
		}
	}
	if slots.Gender == "" {
		for _, kw := range femaleKeywords {
			if strings.Contains(msg, kw) {
				slots.Gender = "female"
				break
			}
		}
	}
	if slots.Gender == "" && profile != nil && profile.Gender != "" {
		slots.Gender = profile.Gender
	}
	if slots.Gender == "" {
		slots.Gender = DefaultGender
	}

	for _, a := range serviceKeywords {
		if strings.Contains(msg, a.keyword) {
			slots.Service = a.canonical
			break
		}
	}

	for _, kw := range lowBudgetKeywords {
		if strings.Contains(msg, kw) {
			slots.BudgetIntent = BudgetLow
			break
		}
	}
	if slots.BudgetIntent == "" {
		for _, kw := range highBudgetKeywords {
			if strings.Contains(msg, kw) {
				slots.BudgetIntent = BudgetHigh
				break
			}
		}
	}

	return slots
}
