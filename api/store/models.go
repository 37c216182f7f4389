/* models.go
 * This file contains the structs that relate to DB documents
 * Authors: Roman Divkovic
 */

package store

import (
	"time"

	"betbuddy-bot/api/shared"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventDoc is an event as stored in the events collection. Two historical shapes are
// supported: newer events embed their canonical matches, older events carry a list of
// external fight ids plus the api slug instead. Event assembly tolerates both without
// a data migration.
type EventDoc struct {
	Id        primitive.ObjectID `bson:"_id,omitempty"`
	EventID   string             `bson:"event_id"`
	GroupID   string             `bson:"group_id"`
	Title     string             `bson:"title"`
	Date      time.Time          `bson:"date"`
	Location  string             `bson:"location,omitempty"`
	Status    shared.Status      `bson:"status"`
	Matches   []shared.Match     `bson:"matches,omitempty"`
	Fights    []string           `bson:"fights,omitempty"`
	APISlug   string             `bson:"api_slug,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Prediction is one user's forecast for one match. The identity is the composite
// group/event/user/match key, at most one prediction per user per match per event.
// IsCorrect and IsCorrectMethod stay nil until the match result is available, pending
// is an explicit state and never defaults to false.
type Prediction struct {
	Id                primitive.ObjectID `bson:"_id,omitempty"`
	GroupID           string             `bson:"group_id"`
	EventID           string             `bson:"event_id"`
	UserID            string             `bson:"user_id"`
	Username          string             `bson:"username,omitempty"`
	MatchID           string             `bson:"match_id"`
	PredictedWinnerID string             `bson:"predicted_winner_id"`
	Method            string             `bson:"method"`
	CreatedAt         time.Time          `bson:"created_at"`
	IsCorrect         *bool              `bson:"is_correct,omitempty"`
	IsCorrectMethod   *bool              `bson:"is_correct_method,omitempty"`
	PointsEarned      int                `bson:"points_earned"`
}

// Member is a group membership record, used for display name resolution
type Member struct {
	GroupID  string `bson:"group_id"`
	UserID   string `bson:"user_id"`
	Username string `bson:"username"`
	Role     string `bson:"role,omitempty"`
}

// LeaderboardEntry is the per-user row of an event leaderboard
type LeaderboardEntry struct {
	UserID             string `bson:"user_id" json:"userId"`
	Username           string `bson:"username" json:"userName"`
	Points             int    `bson:"points" json:"points"`
	CorrectPredictions int    `bson:"correct_predictions" json:"correctPredictions"`
	TotalPredictions   int    `bson:"total_predictions" json:"totalPredictions"`
}

// Leaderboard is the cached leaderboard document for one event. It is a recomputable
// projection, recomputation from predictions and matches is always the source of truth.
type Leaderboard struct {
	GroupID   string             `bson:"group_id"`
	EventID   string             `bson:"event_id"`
	UpdatedAt time.Time          `bson:"updated_at"`
	Entries   []LeaderboardEntry `bson:"entries"`
}
