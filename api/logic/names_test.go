/* names_test.go
 * Contains unit tests for names.go functions
 * Authors: Roman Divkovic
 */

package logic

import (
	"testing"

	"betbuddy-bot/api/shared"

	"github.com/stretchr/testify/assert"
)

func namedCard() []shared.Match {
	return []shared.Match{
		{
			ID:       "101",
			Fighter1: shared.Fighter{ID: "1", Name: "Jon Jones"},
			Fighter2: shared.Fighter{ID: "2", Name: "Stipe Miocic"},
		},
		{
			ID:       "102",
			Fighter1: shared.Fighter{ID: "3", Name: "Alex Pereira"},
			Fighter2: shared.Fighter{ID: "4", Name: "Jiri Prochazka"},
		},
	}
}

// region CanonicalMethod tests

func TestCanonicalMethod_ExactMatches(t *testing.T) {
	for _, method := range ValidMethods {
		resolved, err := CanonicalMethod(method)
		assert.NoError(t, err)
		assert.Equal(t, method, resolved)
	}
}

func TestCanonicalMethod_CaseInsensitive(t *testing.T) {
	resolved, err := CanonicalMethod("ko/tko")

	assert.NoError(t, err)
	assert.Equal(t, "KO/TKO", resolved)
}

func TestCanonicalMethod_Aliases(t *testing.T) {
	cases := map[string]string{
		"ko":  "KO/TKO",
		"tko": "KO/TKO",
		"sub": "Submission",
		"dec": "Decision",
	}
	for input, want := range cases {
		resolved, err := CanonicalMethod(input)
		assert.NoError(t, err)
		assert.Equal(t, want, resolved)
	}
}

func TestCanonicalMethod_TrimsWhitespace(t *testing.T) {
	resolved, err := CanonicalMethod("  decision ")

	assert.NoError(t, err)
	assert.Equal(t, "Decision", resolved)
}

func TestCanonicalMethod_Invalid(t *testing.T) {
	_, err := CanonicalMethod("headkick")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Decision, KO/TKO, Submission")
}

// endregion

// region ResolveFighter tests

func TestResolveFighter_ExactName(t *testing.T) {
	matchID, fighterID, err := ResolveFighter("Jon Jones", namedCard())

	assert.NoError(t, err)
	assert.Equal(t, "101", matchID)
	assert.Equal(t, "1", fighterID)
}

func TestResolveFighter_CaseInsensitive(t *testing.T) {
	matchID, fighterID, err := ResolveFighter("jon jones", namedCard())

	assert.NoError(t, err)
	assert.Equal(t, "101", matchID)
	assert.Equal(t, "1", fighterID)
}

func TestResolveFighter_FuzzyPartialName(t *testing.T) {
	matchID, fighterID, err := ResolveFighter("Pereira", namedCard())

	assert.NoError(t, err)
	assert.Equal(t, "102", matchID)
	assert.Equal(t, "3", fighterID)
}

func TestResolveFighter_SecondFighter(t *testing.T) {
	matchID, fighterID, err := ResolveFighter("Stipe Miocic", namedCard())

	assert.NoError(t, err)
	assert.Equal(t, "101", matchID)
	assert.Equal(t, "2", fighterID)
}

func TestResolveFighter_NoMatch(t *testing.T) {
	_, _, err := ResolveFighter("Conor McGregor", namedCard())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Conor McGregor")
}

func TestResolveFighter_EmptyCard(t *testing.T) {
	_, _, err := ResolveFighter("Jon Jones", nil)

	assert.Error(t, err)
}

func TestResolveFighter_IgnoresUnnamedFighters(t *testing.T) {
	matches := []shared.Match{
		{
			ID:       "101",
			Fighter1: shared.Fighter{ID: "1", Name: ""},
			Fighter2: shared.Fighter{ID: "2", Name: "Stipe Miocic"},
		},
	}

	matchID, fighterID, err := ResolveFighter("Stipe Miocic", matches)

	assert.NoError(t, err)
	assert.Equal(t, "101", matchID)
	assert.Equal(t, "2", fighterID)
}

// endregion
