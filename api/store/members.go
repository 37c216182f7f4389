/* members.go
 * Contains the methods for interacting with the members collection
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

// GetGroupMembers does a DB lookup for the group's membership records and returns a
// userID to display name map. Display names are resolved at aggregation time, not
// cached on predictions, so a member renaming themselves updates historical
// leaderboards too.
// Preconditions: None
// Postconditions: Returns map of userID to display name, or an error if it occurs.
// A missing members collection yields an empty map, not an error.
func (s *Store) GetGroupMembers() (map[string]string, error) {
	filter := bson.D{{Key: "group_id", Value: s.GroupID}}

	cursor, err := s.Collections.Members.Find(context.TODO(), filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("error fetching members from db: %w", err)
	}

	var members []Member
	if err = cursor.All(context.TODO(), &members); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of members: %w", err)
	}

	names := make(map[string]string, len(members))
	for _, member := range members {
		names[member.UserID] = member.Username
	}
	return names, nil
}

// StoreMember stores or updates a group membership record
// Preconditions: Receives the Member to be stored
// Postconditions: Inserts or updates the membership document, or returns an error if the
// operation was unsuccessful
func (s *Store) StoreMember(member Member) error {
	if member.UserID == "" {
		return fmt.Errorf("member is missing a user id")
	}
	member.GroupID = s.GroupID

	filter := bson.M{"group_id": s.GroupID, "user_id": member.UserID}

	var existing Member
	err := s.Collections.Members.FindOne(context.TODO(), filter).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing member failed: %w", err)
	}

	if notFound {
		_, err := s.Collections.Members.InsertOne(context.TODO(), member)
		if err != nil {
			return fmt.Errorf("failed to insert new member: %w", err)
		}
		return nil
	}

	update := bson.M{"$set": member}
	_, err = s.Collections.Members.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return fmt.Errorf("failed to update existing member: %w", err)
	}
	return nil
}
