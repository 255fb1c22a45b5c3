package agent

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls the first JSON object out of a model reply. Models wrap
// JSON in markdown fences or surrounding prose often enough that steps never
// unmarshal the reply directly.
func ExtractJSON(response string) string {
	response = strings.TrimSpace(response)

	if idx := strings.Index(response, "```json"); idx != -1 {
		start := idx + len("```json")
		if end := strings.Index(response[start:], "```"); end != -1 {
			candidate := strings.TrimSpace(response[start : start+end])
			if json.Valid([]byte(candidate)) {
				return candidate
			}
		}
	} else if idx := strings.Index(response, "```"); idx != -1 {
		start := idx + 3
		// Skip the language tag if present.
		if nl := strings.Index(response[start:], "\n"); nl != -1 {
			start += nl + 1
		}
		if end := strings.Index(response[start:], "```"); end != -1 {
			candidate := strings.TrimSpace(response[start : start+end])
			if json.Valid([]byte(candidate)) {
				return candidate
			}
		}
	}

	start := strings.Index(response, "{")
	if start == -1 {
		return ""
	}

	dec := json.NewDecoder(strings.NewReader(response[start:]))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return ""
	}
	return string(raw)
}
