/* test_helpers.go
 * Contains test helper functions for store package tests
 * Authors: Roman Divkovic
 */

package store

import (
	"context"
	"time"

	"betbuddy-bot/api/shared"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMockStore creates a Store instance for testing purposes.
// This can be used with a real test database or in-memory MongoDB.
func NewMockStore(dbName string, mongoURI string) (*Store, error) {
	return NewStore(dbName, mongoURI, "test_group")
}

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function.
func CreateTestStore(mongoURI string) (*Store, func(), error) {
	store, err := NewMockStore("test_betbuddy", mongoURI)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			// Drop test database
			store.Database.Drop(context.TODO())
			// Disconnect client
			store.Client.Disconnect(context.TODO())
		}
	}

	return store, cleanup, nil
}

// CreateTestClient creates a test MongoDB client.
func CreateTestClient(mongoURI string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// CreateSampleMatches creates a small completed card for testing.
func CreateSampleMatches() []shared.Match {
	return []shared.Match{
		{
			ID:       "101",
			Fighter1: shared.Fighter{ID: "f1", Name: "Jon Jones", Record: "27-1-0", Country: "USA"},
			Fighter2: shared.Fighter{ID: "f2", Name: "Stipe Miocic", Record: "20-4-0", Country: "USA"},
			Status:   shared.StatusCompleted,
			Order:    1,
			Result:   &shared.MatchResult{WinnerID: "f1", Method: "KO/TKO"},
		},
		{
			ID:       "102",
			Fighter1: shared.Fighter{ID: "f3", Name: "Alex Pereira", Record: "11-2-0", Country: "Brazil"},
			Fighter2: shared.Fighter{ID: "f4", Name: "Jiri Prochazka", Record: "30-4-1", Country: "Czech Republic"},
			Status:   shared.StatusUpcoming,
			Order:    2,
		},
	}
}

// CreateSamplePrediction creates sample Prediction data for testing.
func CreateSamplePrediction(userID, username, eventID, matchID string) Prediction {
	return Prediction{
		GroupID:           "test_group",
		EventID:           eventID,
		UserID:            userID,
		Username:          username,
		MatchID:           matchID,
		PredictedWinnerID: "f1",
		Method:            "KO/TKO",
		CreatedAt:         time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}
