package planner

// Enrich attaches known coordinates to every activity whose place name has an
// exact match in the document's lookup table. Activities without a match are
// left untouched: generated labels like "in transit" or model-invented names
// are expected and never an error.
func Enrich(result *PlanResult, doc *TravelDataDocument) {
	if result == nil || result.Failed() || doc == nil {
		return
	}

	for d := range result.DailyPlans {
		activities := result.DailyPlans[d].Activities
		for a := range activities {
			if loc, ok := doc.Locations[activities[a].Place]; ok {
				coord := loc
				activities[a].Location = &coord
			}
		}
	}
}
