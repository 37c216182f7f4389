/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Roman Divkovic
 */

package store

import (
	"context"

	"betbuddy-bot/api/shared"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	GetEvent(eventID string) (EventDoc, error)
	GetGroupEvents() ([]EventDoc, error)
	StoreEvent(event EventDoc) error
	ReplaceEventMatches(eventID string, matches []shared.Match) error
	StoreUserPrediction(userID string, prediction Prediction) error
	GetUserPredictions(userID string, eventID string) ([]Prediction, error)
	GetAllEventPredictions(eventID string) ([]Prediction, error)
	GetGroupMembers() (map[string]string, error)
	StoreMember(member Member) error
	FetchLeaderboardFromDB(eventID string) ([]LeaderboardEntry, error)
	StoreLeaderboard(leaderboard Leaderboard) error

	// Getter methods for accessing fields
	GetDatabase() interface{ Name() string }
	GetGroupID() string
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetGroupID returns the group this store is scoped to
func (s *Store) GetGroupID() string {
	return s.GroupID
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
