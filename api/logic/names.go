/* names.go
 * Contains the logic for resolving user input to fighters and finish methods
 * Authors: Roman Divkovic
 */

package logic

import (
	"fmt"
	"sort"
	"strings"

	"betbuddy-bot/api/shared"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ValidMethods is the closed set of finish methods a prediction may use
var ValidMethods = []string{"Decision", "KO/TKO", "Submission"}

// methodAliases maps common shorthand to the canonical method strings
var methodAliases = map[string]string{
	"ko":  "KO/TKO",
	"tko": "KO/TKO",
	"sub": "Submission",
	"dec": "Decision",
}

// CanonicalMethod resolves user input to a canonical finish method
// Preconditions: Receives the raw method string from user input
// Postconditions: Returns the canonical method string, or an error listing the valid
// methods if the input does not resolve
func CanonicalMethod(input string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(input))
	for _, method := range ValidMethods {
		if strings.ToLower(method) == lower {
			return method, nil
		}
	}
	if method, ok := methodAliases[lower]; ok {
		return method, nil
	}
	return "", fmt.Errorf("'%s' is not a valid method, expected one of: %s", input, strings.Join(ValidMethods, ", "))
}

// ResolveFighter finds the match and fighter a user's input refers to on an event card.
// Matching is fuzzy so close names resolve, with exact matches preferred when the
// input is ambiguous.
// Preconditions: Receives the user's fighter name input and the event's canonical matches
// Postconditions: Returns the match id and fighter id of the best match, or an error if
// no fighter on the card resolves
func ResolveFighter(input string, matches []shared.Match) (string, string, error) {
	type ref struct {
		matchID   string
		fighterID string
	}

	lookup := make(map[string]ref)
	var names []string
	for _, match := range matches {
		for _, fighter := range []shared.Fighter{match.Fighter1, match.Fighter2} {
			if fighter.Name == "" {
				continue
			}
			lower := strings.ToLower(fighter.Name)
			lookup[lower] = ref{matchID: match.ID, fighterID: fighter.ID}
			names = append(names, lower)
		}
	}

	lowerInput := strings.ToLower(strings.TrimSpace(input))
	results := fuzzy.RankFindFold(lowerInput, names)
	if len(results) == 0 {
		return "", "", fmt.Errorf("no fighter matching '%s' on this card", input)
	}

	// Prefer an exact match, otherwise take the closest ranked one
	target := ""
	for _, result := range results {
		if result.Target == lowerInput {
			target = result.Target
			break
		}
	}
	if target == "" {
		sort.Sort(results)
		target = results[0].Target
	}

	found := lookup[target]
	return found.matchID, found.fighterID, nil
}
