/* events.go
 * Contains the methods for interacting with the events collection
 * Authors: Roman Divkovic
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"betbuddy-bot/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetEvent does a DB lookup for a single event in this store's group
// Preconditions: Receives string containing the eventID
// Postconditions: Returns the EventDoc if it exists, or an error if it occurs
func (s *Store) GetEvent(eventID string) (EventDoc, error) {
	opts := options.FindOne()

	var result EventDoc
	err := s.Collections.Events.FindOne(context.TODO(), bson.M{"group_id": s.GroupID, "event_id": eventID}, opts).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return EventDoc{}, err
		}
		return EventDoc{}, fmt.Errorf("error fetching event from db: %w", err)
	}

	return result, nil
}

// GetGroupEvents does a DB lookup for all events belonging to this store's group
// Preconditions: None
// Postconditions: Returns slice of EventDoc sorted by date ascending, or an error if it occurs
func (s *Store) GetGroupEvents() ([]EventDoc, error) {
	filter := bson.D{{Key: "group_id", Value: s.GroupID}}

	cursor, err := s.Collections.Events.Find(context.TODO(), filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching events from db: %w", err)
	}

	var results []EventDoc
	if err = cursor.All(context.TODO(), &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of events: %w", err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Date.Before(results[j].Date)
	})

	return results, nil
}

// StoreEvent stores or updates an event in the db, keyed by group and event id
// Preconditions: Receives the EventDoc to be stored
// Postconditions: Inserts or updates the event document, or returns an error if the
// operation was unsuccessful
func (s *Store) StoreEvent(event EventDoc) error {
	if event.EventID == "" {
		return fmt.Errorf("event is missing an event id")
	}
	event.GroupID = s.GroupID

	// Attempt to find an existing document
	var existing EventDoc
	filter := bson.M{"group_id": s.GroupID, "event_id": event.EventID}
	err := s.Collections.Events.FindOne(context.TODO(), filter).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing event failed: %w", err)
	}

	if notFound {
		_, err := s.Collections.Events.InsertOne(context.TODO(), event)
		if err != nil {
			return fmt.Errorf("failed to insert new event: %w", err)
		}
		return nil
	}

	update := bson.M{"$set": event}
	_, err = s.Collections.Events.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return fmt.Errorf("failed to update existing event: %w", err)
	}
	return nil
}

// ReplaceEventMatches replaces an event's matches wholesale. Match records are owned
// by the event and replaced in full whenever data is refreshed from the external source.
// Preconditions: Receives the eventID and the new canonical match list
// Postconditions: Updates the matches field of the event document, or returns an error
// if it occurs
func (s *Store) ReplaceEventMatches(eventID string, matches []shared.Match) error {
	filter := bson.M{"group_id": s.GroupID, "event_id": eventID}
	update := bson.M{"$set": bson.M{"matches": matches}}

	res, err := s.Collections.Events.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return fmt.Errorf("failed to replace event matches: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
