package planner

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Canonical and legacy top-level keys for the generated schedule. The legacy
// key is accepted on parse and re-emitted under the canonical one; no other
// legacy behavior is carried over.
const (
	planKey       = "daily_plans"
	legacyPlanKey = "daily_schedule"
)

// planEnvelope is the expected top-level shape of the generated text.
type planEnvelope struct {
	Summary       *PlanSummary `json:"summary"`
	DailyPlans    []DailyPlan  `json:"daily_plans"`
	DailySchedule []DailyPlan  `json:"daily_schedule"`
}

// StripFences removes a markdown code fence around the text, including an
// optional "json" language tag, plus any label text before the opening fence.
// Applying it to already-stripped text is a no-op.
func StripFences(text string) string {
	text = strings.TrimSpace(text)

	if i := strings.Index(text, "```json"); i >= 0 {
		text = text[i+len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}

	if i := strings.LastIndex(text, "```"); i >= 0 {
		text = text[:i]
	}

	return strings.TrimSpace(text)
}

// hasPlanKey reports whether text already looks like an object carrying one
// of the schedule keys at some level, in which case no wrapping is applied.
func hasPlanKey(text string) bool {
	if !strings.HasPrefix(text, "{") {
		return false
	}
	return strings.Contains(text, `"`+planKey+`"`) || strings.Contains(text, `"`+legacyPlanKey+`"`)
}

// coerceShape wraps text that is only the array body (or a run of bare day
// objects) under the canonical key. A trailing comma left over from a
// truncated list is trimmed first.
func coerceShape(text string) string {
	text = strings.TrimSpace(text)
	if hasPlanKey(text) {
		return text
	}

	text = strings.TrimSuffix(text, ",")
	if strings.HasPrefix(text, "[") {
		return `{"` + planKey + `": ` + text + `}`
	}
	return `{"` + planKey + `": [` + text + `]}`
}

var adjacentObjects = regexp.MustCompile(`\}\s*\{`)

// insertObjectCommas repairs adjacent object boundaries: `}{` -> `},{`.
func insertObjectCommas(text string) string {
	return adjacentObjects.ReplaceAllString(text, "},{")
}

// closeUnterminated appends the closing braces/brackets an unterminated
// document is missing. String literals (and escapes inside them) are skipped
// so braces in notes text do not skew the balance.
func closeUnterminated(text string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			stack = append(stack, '}')
		case c == '[':
			stack = append(stack, ']')
		case c == '}' || c == ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if inString {
		text += `"`
	}
	for i := len(stack) - 1; i >= 0; i-- {
		text += string(stack[i])
	}
	return text
}

// repairs is the ordered ladder of syntactic fixes. Each is a pure
// text-to-text transform; Normalize reattempts a parse after applying each
// one cumulatively.
var repairs = []func(string) string{
	insertObjectCommas,
	closeUnterminated,
}

// parsePlan decodes text into a PlanResult, folding the legacy schedule key
// into the canonical field. A parseable object carrying neither key is
// rejected.
func parsePlan(text string) (*PlanResult, bool) {
	var envelope planEnvelope
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, false
	}

	days := envelope.DailyPlans
	if days == nil {
		days = envelope.DailySchedule
	}
	if days == nil {
		return nil, false
	}

	return &PlanResult{Summary: envelope.Summary, DailyPlans: days}, true
}

// Normalize coerces raw generator output into a PlanResult. It never returns
// an error: unrecoverable text yields the error shape with the raw response
// preserved verbatim for diagnosis.
func Normalize(raw string) *PlanResult {
	text := coerceShape(StripFences(raw))

	if result, ok := parsePlan(text); ok {
		return result
	}

	for _, repair := range repairs {
		text = repair(text)
		if result, ok := parsePlan(text); ok {
			return result
		}
	}

	return &PlanResult{
		Error:       "failed to parse generated plan",
		Message:     "response is not recoverable JSON in the expected schedule shape",
		RawResponse: raw,
	}
}

// CheckCardinality reports whether the plan holds exactly the requested
// number of day entries. Content beyond the count is not judged here.
func CheckCardinality(result *PlanResult, days int) bool {
	return result != nil && !result.Failed() && len(result.DailyPlans) == days
}
