package assistant

import (
	"testing"

	"github.com/salonat-app/salon-api/internal/models"
)

func TestExtractSlots_DefaultsWhenNothingKnown(t *testing.T) {
	slots := ExtractSlots("مرحبا", nil)

	if slots.City != DefaultCity {
		t.Fatalf("city = %q, want %q", slots.City, DefaultCity)
	}
	if slots.Gender != DefaultGender {
		t.Fatalf("gender = %q, want %q", slots.Gender, DefaultGender)
	}
	if slots.Service != "" || slots.BudgetIntent != "" {
		t.Fatalf("unexpected service/budget: %+v", slots)
	}
}

func TestExtractSlots_MessageBeatsProfile(t *testing.T) {
	profile := &models.Customer{City: "جنين", Gender: "female"}

	slots := ExtractSlots("بدي صالون حلاق شباب في نابلس", profile)

	if slots.City != "نابلس" {
		t.Fatalf("city = %q, want نابلس", slots.City)
	}
	if slots.Gender != "male" {
		t.Fatalf("gender = %q, want male", slots.Gender)
	}
}

func TestExtractSlots_ProfileFallback(t *testing.T) {
	profile := &models.Customer{City: "الخليل", Gender: "male"}

	slots := ExtractSlots("بدي موعد", profile)

	if slots.City != "الخليل" {
		t.Fatalf("city = %q, want الخليل", slots.City)
	}
	if slots.Gender != "male" {
		t.Fatalf("gender = %q, want male", slots.Gender)
	}
}

func TestExtractSlots_CityAliases(t *testing.T) {
	cases := map[string]string{
		"a salon in ramallah":  "رام الله",
		"صالون في رامالله":     "رام الله",
		"anything in hebron":   "الخليل",
		"صالون عرايس في القدس": "القدس",
	}

	for message, want := range cases {
		if got := ExtractSlots(message, nil).City; got != want {
			t.Fatalf("ExtractSlots(%q).City = %q, want %q", message, got, want)
		}
	}
}

func TestExtractSlots_ServiceAndBudget(t *testing.T) {
	slots := ExtractSlots("وين في مكياج رخيص؟", nil)

	if slots.Service != "makeup" {
		t.Fatalf("service = %q, want makeup", slots.Service)
	}
	if slots.BudgetIntent != BudgetLow {
		t.Fatalf("budget = %q, want %q", slots.BudgetIntent, BudgetLow)
	}

	slots = ExtractSlots("looking for a luxury bridal salon", nil)
	if slots.Service != "bridal" {
		t.Fatalf("service = %q, want bridal", slots.Service)
	}
	if slots.BudgetIntent != BudgetHigh {
		t.Fatalf("budget = %q, want %q", slots.BudgetIntent, BudgetHigh)
	}
}

func TestExtractSlots_FirstAliasWins(t *testing.T) {
	// Two cities in one message: the earlier table entry decides, every
	// run the same.
	slots := ExtractSlots("nablus or hebron, whichever is better", nil)
	if slots.City != "نابلس" {
		t.Fatalf("city = %q, want نابلس", slots.City)
	}

	slots = ExtractSlots("haircut and color for tomorrow", nil)
	if slots.Service != "haircut" {
		t.Fatalf("service = %q, want haircut", slots.Service)
	}
}
