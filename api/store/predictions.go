/* predictions.go
 * Contains the methods for interacting with the predictions collection
 * Authors: Roman Divkovic
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// StoreUserPrediction stores a user prediction in the db. The composite key is
// group/event/user/match, so resubmitting overwrites the user's own prediction
// for that match and nothing else.
// Preconditions: Receives string containing the userID and the Prediction to store
// Postconditions: Inserts or updates the user's prediction, or returns an error if the
// operation was unsuccessful
func (s *Store) StoreUserPrediction(userID string, prediction Prediction) error {
	if prediction.UserID != userID {
		return fmt.Errorf("prediction user id %s does not match caller %s", prediction.UserID, userID)
	}
	prediction.GroupID = s.GroupID

	filter := bson.M{
		"group_id": s.GroupID,
		"event_id": prediction.EventID,
		"user_id":  userID,
		"match_id": prediction.MatchID,
	}

	// Attempt to find an existing document
	var existing Prediction
	err := s.Collections.Predictions.FindOne(context.TODO(), filter).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing prediction failed: %w", err)
	}

	// The user currently does not have a prediction stored for this match so we
	// create a new document
	if notFound {
		_, err := s.Collections.Predictions.InsertOne(context.TODO(), prediction)
		if err != nil {
			return fmt.Errorf("failed to insert new user prediction: %w", err)
		}
		return nil
	}

	// Else overwrite the user's existing prediction
	update := bson.M{"$set": prediction}
	_, err = s.Collections.Predictions.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return fmt.Errorf("failed to update existing user prediction: %w", err)
	}
	return nil
}

// GetUserPredictions does a DB lookup and gets all of one user's predictions for an event
// Preconditions: Receives strings containing the userID and eventID
// Postconditions: Returns slice of the user's Predictions, or an error if it occurs
func (s *Store) GetUserPredictions(userID string, eventID string) ([]Prediction, error) {
	filter := bson.D{
		{Key: "group_id", Value: s.GroupID},
		{Key: "event_id", Value: eventID},
		{Key: "user_id", Value: userID},
	}

	cursor, err := s.Collections.Predictions.Find(context.TODO(), filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching predictions from db: %w", err)
	}

	var results []Prediction
	if err = cursor.All(context.TODO(), &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of predictions: %w", err)
	}

	return results, nil
}

// GetAllEventPredictions does a DB lookup and gets predictions across all group members
// for an event. Used in leaderboard calculations.
// Preconditions: Receives string containing the eventID
// Postconditions: Returns slice of Predictions, or an error if it occurs
func (s *Store) GetAllEventPredictions(eventID string) ([]Prediction, error) {
	filter := bson.D{
		{Key: "group_id", Value: s.GroupID},
		{Key: "event_id", Value: eventID},
	}

	cursor, err := s.Collections.Predictions.Find(context.TODO(), filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching predictions from db: %w", err)
	}

	var results []Prediction
	if err = cursor.All(context.TODO(), &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of predictions: %w", err)
	}

	return results, nil
}
