package recommender

import "strings"

// Agent parameters arrive as an opaque map owned by the agent that reads
// them. Missing or mistyped values fall back to the seeded defaults so a
// partially edited config never breaks prompt construction.
func floatParam(params map[string]any, key string, def float64) float64 {
	if params == nil {
		return def
	}
	switch v := params[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

func boolParam(params map[string]any, key string, def bool) bool {
	if params == nil {
		return def
	}
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

func fallbackReasoning(agent, raw string) string {
	msg := agent + " fallback path used: model response could not be decoded"
	if strings.TrimSpace(raw) != "" {
		msg += "\n\nraw model response:\n" + raw
	}
	return msg
}

func disabledReasoning(agent string) string {
	return agent + " is disabled; no analysis performed"
}
