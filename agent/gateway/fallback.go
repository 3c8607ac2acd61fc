package gateway

import "strings"

// Synthetic payloads returned when the backend is unreachable. The shape is
// selected by sniffing the original prompt: each agent's prompt contains a
// distinctive phrase, checked most-specific first so the engine prompt (which
// also mentions products) reaches the recommendation shape.
const (
	fallbackCustomerPayload = `{
  "interests": ["electronics", "gaming", "technology", "outdoor gear", "sports"],
  "purchasePatterns": {
    "frequency": "medium",
    "averageSpend": 150.75,
    "preferredCategories": ["electronics", "gaming", "outdoor equipment"]
  },
  "predictions": {
    "likelyToBuy": ["smartphones", "gaming accessories", "fitness trackers"],
    "priceRange": "$100-$500",
    "stylePreferences": ["modern", "high-tech", "durable"]
  }
}`

	fallbackProductPayload = `{
  "similarProducts": ["P1002", "P1005", "P1008"],
  "complementaryProducts": ["P2001", "P2003", "P2007"],
  "targetDemographic": ["tech enthusiasts", "professionals", "students"],
  "seasonality": "year-round with holiday peaks",
  "priceCompetitiveness": "premium"
}`

	fallbackRecommendationPayload = `{
  "recommendedProducts": ["P1002", "P2001", "P3005", "P4002", "P5001"],
  "justification": "These products align with the customer's interests in technology and gaming, while also introducing complementary items that match their purchase patterns and price range preferences."
}`

	fallbackGenericPayload = `{
  "error": "Could not generate response",
  "fallback": "This is a mock response"
}`
)

func fallbackPayload(prompt string) string {
	switch {
	case strings.Contains(prompt, "customer data"):
		return fallbackCustomerPayload
	case strings.Contains(prompt, "recommendation"):
		return fallbackRecommendationPayload
	case strings.Contains(prompt, "product"):
		return fallbackProductPayload
	default:
		return fallbackGenericPayload
	}
}
