/* leaderboard.go
 * Contains the leaderboard aggregator. Folds all predictions for an event across all
 * group members into a ranked leaderboard
 * Authors: Roman Divkovic
 */

package logic

import (
	"sort"
	"time"

	"betbuddy-bot/api/shared"
	"betbuddy-bot/api/store"
)

// BuildLeaderboard computes the ranked leaderboard for one event from scratch. It is pure
// and idempotent, every invocation recomputes from the source predictions and matches, so
// it can be called on every view without accumulating drift.
// Preconditions: Receives the full set of canonical matches for the event, all predictions
// across group members for the event, a userID to display name map from group membership,
// and the scoring policy
// Postconditions: Returns one entry per user with at least one prediction, sorted by points
// descending. Ties break on correct prediction count, then earliest first prediction, then
// user id, so rankings are deterministic and reproducible.
func BuildLeaderboard(matches []shared.Match, preds []store.Prediction, members map[string]string, policy ScoringPolicy) []store.LeaderboardEntry {
	byID := make(map[string]shared.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}

	type totals struct {
		points  int
		correct int
		total   int
		firstAt time.Time
	}
	perUser := make(map[string]*totals)

	for _, pred := range preds {
		t, ok := perUser[pred.UserID]
		if !ok {
			t = &totals{firstAt: pred.CreatedAt}
			perUser[pred.UserID] = t
		}
		// Total reflects commitment, pending and unmatched predictions count too
		t.total++
		if pred.CreatedAt.Before(t.firstAt) {
			t.firstAt = pred.CreatedAt
		}

		match, ok := byID[pred.MatchID]
		if !ok {
			// Prediction for a match missing from the assembled card stays pending,
			// it must not corrupt the rest of the computation
			continue
		}
		scored, err := EvaluatePrediction(pred, match, policy)
		if err != nil {
			continue
		}
		t.points += scored.PointsEarned
		if scored.IsCorrect != nil && *scored.IsCorrect {
			t.correct++
		}
	}

	entries := make([]store.LeaderboardEntry, 0, len(perUser))
	for userID, t := range perUser {
		// Display names come from group membership at aggregation time, with the
		// raw user id as fallback when the membership record is absent
		name, ok := members[userID]
		if !ok || name == "" {
			name = userID
		}
		entries = append(entries, store.LeaderboardEntry{
			UserID:             userID,
			Username:           name,
			Points:             t.points,
			CorrectPredictions: t.correct,
			TotalPredictions:   t.total,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.CorrectPredictions != b.CorrectPredictions {
			return a.CorrectPredictions > b.CorrectPredictions
		}
		fa, fb := perUser[a.UserID].firstAt, perUser[b.UserID].firstAt
		if !fa.Equal(fb) {
			return fa.Before(fb)
		}
		return a.UserID < b.UserID
	})

	return entries
}
