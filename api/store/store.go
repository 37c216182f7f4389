/* store.go
 * Contains the Store struct and NewStore function. The methods for this package were split into
 * four files: events, predictions, members and leaderboard. Each of these files contain methods
 * for interacting with that part of the database
 * Authors: Roman Divkovic
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	GroupID     string
	Collections struct {
		Events       *mongo.Collection
		Predictions  *mongo.Collection
		Members      *mongo.Collection
		Leaderboards *mongo.Collection
	}
}

// NewStore initialises the Store. Sets the group scope and initialises the db connection
// Preconditions: Receives strings containing dbName, mongoURI and groupID
// Postconditions: Sets collection values and returns pointer to the Store object, or error if it occurs
func NewStore(dbName string, mongoURI string, groupID string) (*Store, error) {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	if groupID == "" {
		return nil, fmt.Errorf("groupID cannot be empty")
	}

	s := &Store{
		Client:   client,
		Database: db,
		GroupID:  groupID,
	}
	s.Collections.Events = db.Collection("events")
	s.Collections.Predictions = db.Collection("predictions")
	s.Collections.Members = db.Collection("members")
	s.Collections.Leaderboards = db.Collection("leaderboards")

	return s, nil
}
