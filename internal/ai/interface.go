package ai

import "context"

// TextGenerator defines the contract for the itinerary text generator.
// The output is free text: callers must treat it as untrusted near-JSON and
// run it through the planner's normalizer. Two calls with the same prompt may
// return different text.
type TextGenerator interface {
	// GeneratePlan sends the composed prompt and returns the raw model text.
	GeneratePlan(ctx context.Context, prompt string) (string, error)
}
