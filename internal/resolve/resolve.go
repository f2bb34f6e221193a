package resolve

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions caps how many candidates a hint offers.
const maxSuggestions = 3

// Suggest returns the closest candidates to name, best match first.
func Suggest(name string, candidates []string) []string {
	matches := fuzzy.Find(name, candidates)
	n := min(len(matches), maxSuggestions)
	suggestions := make([]string, 0, n)
	for _, m := range matches[:n] {
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}

// NotFoundError builds a "not found" error for a repo or group name,
// including a did-you-mean hint when a close candidate exists.
func NotFoundError(kind, name string, candidates []string) error {
	msg := fmt.Sprintf("%s %q not found", kind, name)
	if suggestions := Suggest(name, candidates); len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
	} else {
		msg += " (run 'dbx list' to see what is available)"
	}
	return fmt.Errorf("%s", msg)
}
