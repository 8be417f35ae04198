package city

import (
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const maxAnswerTokens = 5

func cityCheckPrompt(city string) string {
	return fmt.Sprintf(`Consider this list of locations: "%s". Are all items in this list known cities, countries, or major tourist destinations? Answer with only "Yes" or "No".`, city)
}

// cityCheckConfig asks for a deterministic one-word answer. Thinking is disabled so
// it cannot eat the output budget.
func cityCheckConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0),
		MaxOutputTokens: maxAnswerTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr[int32](0),
		},
	}
}

// isAffirmative reports whether the model answered yes ("Yes", "yes.", " YES").
func isAffirmative(answer string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "yes")
}

func cacheKey(city string) string {
	return strings.ToLower(strings.Join(strings.Fields(city), " "))
}
