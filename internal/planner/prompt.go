package planner

import (
	"fmt"
	"strings"
)

// defaultPromptPlaces caps the place list rendered into the prompt when the
// caller passes no explicit limit. Truncation is deliberate: an oversized
// prompt degrades generation quality faster than a shorter candidate list.
const defaultPromptPlaces = 20

const planSkeleton = `{
  "summary": {
    "main_attractions": ["5-6 key places"],
    "route_overview": "one-sentence route description"
  },
  "daily_plans": [
    {
      "day": 1,
      "date": "YYYY-MM-DD",
      "activities": [
        {
          "type": "attraction|restaurant|hotel",
          "time": "HH:MM",
          "end_time": "HH:MM",
          "duration": 90,
          "place": "place name",
          "notes": "short note on the stop"
        }
      ],
      "meals": {
        "breakfast": {"location": "place name", "time": "HH:MM"},
        "lunch": {"location": "place name", "time": "HH:MM"},
        "dinner": {"location": "place name", "time": "HH:MM"}
      },
      "total_distance": 0
    }
  ]
}`

// formatPlaceInfo renders the candidate places as prompt bullet lines.
// Restaurants expose their meal windows, everything else its visit window.
func formatPlaceInfo(places []PlaceRecord, maxPlaces int) string {
	if maxPlaces <= 0 {
		maxPlaces = defaultPromptPlaces
	}
	if len(places) > maxPlaces {
		places = places[:maxPlaces]
	}

	var b strings.Builder
	for _, p := range places {
		if p.Category == "restaurant" && p.LunchWindow != nil && p.DinnerWindow != nil {
			fmt.Fprintf(&b, "- %s (restaurant)\n", p.Name)
			fmt.Fprintf(&b, "  * lunch window: %s-%s\n", p.LunchWindow.Start, p.LunchWindow.End)
			fmt.Fprintf(&b, "  * dinner window: %s-%s\n", p.DinnerWindow.Start, p.DinnerWindow.End)
			continue
		}

		window := defaultVisitWindow
		if p.RecommendedTime != nil {
			window = *p.RecommendedTime
		}
		fmt.Fprintf(&b, "- %s\n", p.Name)
		fmt.Fprintf(&b, "  * recommended visit window: %s-%s\n", window.Start, window.End)
		fmt.Fprintf(&b, "  * estimated duration: %d minutes\n", p.EstimatedDuration)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ComposePrompt renders the travel document into the generation instruction
// set. It is a pure function of its inputs: identical documents produce
// identical prompts.
func ComposePrompt(doc *TravelDataDocument, maxPlaces int) string {
	trip := doc.Trip
	days := trip.Days()

	accommodation := "none selected"
	if doc.Accommodation != nil {
		accommodation = fmt.Sprintf("%s (check-in %s, check-out %s)",
			doc.Accommodation.Name, doc.Accommodation.CheckIn, doc.Accommodation.CheckOut)
	}

	themes := "any"
	if len(trip.Themes) > 0 {
		themes = strings.Join(trip.Themes, ", ")
	}

	return fmt.Sprintf(`Respond with valid JSON only. Do not include explanations, prose, or markdown fences.

As a travel planner, create a %d-day itinerary for %s.

Trip info:
- Dates: starting %s, %d days total
- Travelers: %d (%s)
- Budget: %d
- Themes: %s
- Accommodation: %s

Places:
%s

Rules:
1. Produce exactly %d day entries, numbered "day" 1 through %d.
2. Order each day as: morning (10:00-12:00) one or two attractions, lunch (12:00-14:00) one restaurant, afternoon (14:00-18:00) one or two attractions, dinner (18:00-20:00) one restaurant.
3. Respect each place's estimated duration and allow at least 30 minutes of travel between places.
4. Day 1 is the arrival day: start at 14:00 or later, schedule dinner and at most two places.
5. The last day is the departure day: one place in the morning, finish before 12:00.
6. Schedule every place inside its recommended visit window.
7. "time" and "end_time" fields use the "HH:MM" format; "date" fields use "YYYY-MM-DD".
8. "duration" is the estimated stay in minutes, as a number.

Return JSON with exactly this structure:
%s`,
		days, trip.Destination.Name,
		trip.StartDate.Format("2006-01-02"), days,
		trip.Travelers.Count, trip.Travelers.Type,
		trip.Budget,
		themes,
		accommodation,
		formatPlaceInfo(doc.Places, maxPlaces),
		days, days,
		planSkeleton,
	)
}

// ComposeRetryPrompt appends corrective feedback from a failed attempt to the
// base prompt and is otherwise identical to ComposePrompt.
func ComposeRetryPrompt(doc *TravelDataDocument, maxPlaces int, feedback string) string {
	base := ComposePrompt(doc, maxPlaces)
	if feedback == "" {
		return base
	}
	return base + "\n\nYour previous response was rejected: " + feedback
}
