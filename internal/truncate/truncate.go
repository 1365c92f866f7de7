// Package truncate bounds returned text to a caller-supplied token budget.
package truncate

// CharsPerToken is the fixed characters-per-token heuristic used to turn a
// token budget into a character budget.
const CharsPerToken = 4

// Marker is appended to text that was cut at the budget.
const Marker = "\n\n[... truncated]"

// Tokens estimates the token count of text under the same heuristic.
func Tokens(text string) int { return len(text) / CharsPerToken }

// Apply returns text bounded to maxTokens. A maxTokens of zero or less means
// no bound. This is a display-time bound only; stored digests are never cut.
func Apply(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	maxChars := maxTokens * CharsPerToken
	if len(text) <= maxChars {
		return text
	}
	return text[:maxChars] + Marker
}
