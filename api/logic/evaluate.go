/* evaluate.go
 * Contains the prediction evaluator. Decides correctness and awards points for a single
 * prediction against the canonical match it targets
 * Authors: Roman Divkovic
 */

package logic

import (
	"errors"
	"fmt"

	"betbuddy-bot/api/shared"
	"betbuddy-bot/api/store"
)

// ErrMatchMismatch marks a contract violation where a prediction is evaluated against
// a match it does not reference. This is a caller bug and must fail loudly rather
// than silently scoring against the wrong match.
var ErrMatchMismatch = errors.New("prediction does not reference the supplied match")

// ScoringPolicy holds the named point constants so scoring rules can be tuned
// without touching the evaluation logic
type ScoringPolicy struct {
	BasePoints  int // awarded for a correct winner call
	MethodBonus int // added when the finish method is also correct
}

// DefaultScoringPolicy is the standard ruleset: one point for the winner, one bonus
// point for also calling the method
var DefaultScoringPolicy = ScoringPolicy{BasePoints: 1, MethodBonus: 1}

// EvaluatePrediction scores one prediction against the canonical match it targets.
// Evaluation is idempotent and never mutates the match; the scored prediction is
// returned as a new value.
// Preconditions: Receives a Prediction, the Match it references and a ScoringPolicy
// Postconditions: Returns the prediction with the derived correctness and points fields set.
// If the match is not completed or has no result, correctness stays undetermined (nil)
// and points are zero. Returns ErrMatchMismatch if the prediction references a different match.
func EvaluatePrediction(pred store.Prediction, match shared.Match, policy ScoringPolicy) (store.Prediction, error) {
	if pred.MatchID != match.ID {
		return store.Prediction{}, fmt.Errorf("%w: prediction targets match %s, got match %s", ErrMatchMismatch, pred.MatchID, match.ID)
	}

	// Undecided matches leave the prediction pending, this is a valid state and
	// must not default correctness to false
	if match.Status != shared.StatusCompleted || match.Result == nil {
		pred.IsCorrect = nil
		pred.IsCorrectMethod = nil
		pred.PointsEarned = 0
		return pred, nil
	}

	correct := pred.PredictedWinnerID == match.Result.WinnerID
	// Method strings are compared case-sensitively with no normalization, input
	// canonicalization happens at the submission boundary
	correctMethod := pred.Method == match.Result.Method

	pred.IsCorrect = &correct
	pred.IsCorrectMethod = &correctMethod

	points := 0
	if correct {
		points = policy.BasePoints
		if correctMethod {
			points += policy.MethodBonus
		}
	}
	pred.PointsEarned = points

	return pred, nil
}
