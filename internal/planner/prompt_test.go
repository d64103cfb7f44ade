package planner

import (
	"fmt"
	"strings"
	"testing"

	"wander/internal/maps"
)

func testDocument(placeCount int) *TravelDataDocument {
	var sourced []SourcedPlace
	for i := 0; i < placeCount; i++ {
		sourced = append(sourced, SourcedPlace{
			Place:   maps.NearbyPlace{PlaceID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Place %d", i)},
			Details: &maps.PlaceDetails{Address: "addr"},
		})
	}
	return Aggregate(testTripRequest(), sourced, []maps.Hotel{
		{Name: "Stay Inn", Rating: 4.2, PriceLevel: 2},
	})
}

func TestComposePrompt_Deterministic(t *testing.T) {
	doc := testDocument(5)
	if ComposePrompt(doc, 20) != ComposePrompt(doc, 20) {
		t.Error("identical documents must produce identical prompts")
	}
}

func TestComposePrompt_CardinalityInstruction(t *testing.T) {
	doc := testDocument(3)
	prompt := ComposePrompt(doc, 20)

	// testTripRequest spans 3 whole days.
	want := "exactly 3 day entries"
	if !strings.Contains(prompt, want) {
		t.Errorf("prompt missing cardinality instruction %q", want)
	}
	if !strings.Contains(prompt, `"daily_plans"`) {
		t.Error("prompt must carry the target schema skeleton")
	}
	if !strings.Contains(prompt, "valid JSON only") {
		t.Error("prompt must demand a JSON-only response")
	}
}

func TestComposePrompt_SchedulingRules(t *testing.T) {
	prompt := ComposePrompt(testDocument(2), 20)

	for _, rule := range []string{
		"morning (10:00-12:00)",
		"lunch (12:00-14:00)",
		"afternoon (14:00-18:00)",
		"dinner (18:00-20:00)",
		"at least 30 minutes of travel",
		"start at 14:00 or later",
		"finish before 12:00",
	} {
		if !strings.Contains(prompt, rule) {
			t.Errorf("prompt missing scheduling rule %q", rule)
		}
	}
}

func TestComposePrompt_TruncatesPlaces(t *testing.T) {
	doc := testDocument(30)
	prompt := ComposePrompt(doc, 10)

	if !strings.Contains(prompt, "Place 9") {
		t.Error("place inside the cap must be rendered")
	}
	if strings.Contains(prompt, "Place 10") {
		t.Error("places beyond the cap must be truncated")
	}
}

func TestComposePrompt_IncludesAccommodation(t *testing.T) {
	prompt := ComposePrompt(testDocument(1), 20)
	if !strings.Contains(prompt, "Stay Inn (check-in 15:00, check-out 11:00)") {
		t.Error("prompt missing the selected accommodation")
	}

	noHotel := Aggregate(testTripRequest(), nil, nil)
	if !strings.Contains(ComposePrompt(noHotel, 20), "none selected") {
		t.Error("prompt must state when no accommodation was selected")
	}
}

func TestComposeRetryPrompt_AppendsFeedback(t *testing.T) {
	doc := testDocument(1)

	if got, want := ComposeRetryPrompt(doc, 20, ""), ComposePrompt(doc, 20); got != want {
		t.Error("empty feedback must yield the base prompt unchanged")
	}

	withFeedback := ComposeRetryPrompt(doc, 20, "return exactly 3 day entries")
	if !strings.HasPrefix(withFeedback, ComposePrompt(doc, 20)) {
		t.Error("feedback must be appended, not replace the base prompt")
	}
	if !strings.Contains(withFeedback, "return exactly 3 day entries") {
		t.Error("feedback clause missing from retry prompt")
	}
}
