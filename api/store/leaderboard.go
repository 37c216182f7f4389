/* leaderboard.go
 * Contains the methods for interacting with the leaderboards collection. The stored
 * leaderboard is a cache of a recomputable projection, the aggregator always recomputes
 * from predictions and matches before storing here
 * Authors: Roman Divkovic
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchLeaderboardFromDB returns the cached leaderboard for an event from the db
// Preconditions: Receives string containing the eventID
// Postconditions: Returns slice of LeaderboardEntry, or an error if it occurs.
// mongo.ErrNoDocuments is passed through so callers can recompute on a cache miss.
func (s *Store) FetchLeaderboardFromDB(eventID string) ([]LeaderboardEntry, error) {
	opts := options.FindOne()

	var res Leaderboard
	filter := bson.D{{Key: "group_id", Value: s.GroupID}, {Key: "event_id", Value: eventID}}
	err := s.Collections.Leaderboards.FindOne(context.TODO(), filter, opts).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch leaderboard from database: %w", err)
	}

	return res.Entries, nil
}

// StoreLeaderboard updates the cached leaderboard stored in the DB
// Preconditions: Receives the Leaderboard value to be stored
// Postconditions: Inserts or updates the leaderboard document and returns nil, or an
// error if it occurs
func (s *Store) StoreLeaderboard(leaderboard Leaderboard) error {
	if reflect.DeepEqual(leaderboard, Leaderboard{}) {
		return fmt.Errorf("leaderboard is empty")
	}
	leaderboard.GroupID = s.GroupID

	// Attempt to find an existing document
	filter := bson.M{"group_id": s.GroupID, "event_id": leaderboard.EventID}
	var res Leaderboard
	err := s.Collections.Leaderboards.FindOne(context.TODO(), filter).Decode(&res)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing record failed: %w", err)
	}

	// Perform insert or update
	log.Println("updating leaderboard in db for event", leaderboard.EventID)
	if notFound {
		_, err := s.Collections.Leaderboards.InsertOne(context.TODO(), leaderboard)
		if err != nil {
			return fmt.Errorf("leaderboard insert failed: %w", err)
		}
		return nil
	}

	update := bson.D{{Key: "$set", Value: leaderboard}}
	_, err = s.Collections.Leaderboards.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return fmt.Errorf("leaderboard update failed: %w", err)
	}
	return nil
}
