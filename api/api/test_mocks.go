/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package
 * Authors: Roman Divkovic
 */

package api

import (
	"context"
	"fmt"

	"betbuddy-bot/api/external"
	"betbuddy-bot/api/shared"
	"betbuddy-bot/api/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// MockStore implements the Store interface for testing
type MockStore struct {
	// Storage for mock data
	Events       map[string]store.EventDoc
	Predictions  map[string]store.Prediction
	Members      map[string]string
	Leaderboards map[string]store.Leaderboard

	// Error injection for testing error paths
	GetEventError               error
	GetGroupEventsError         error
	StoreEventError             error
	ReplaceEventMatchesError    error
	StoreUserPredictionError    error
	GetUserPredictionsError     error
	GetAllEventPredictionsError error
	GetGroupMembersError        error
	StoreMemberError            error
	FetchLeaderboardError       error
	StoreLeaderboardError       error

	// Database and group info
	DatabaseName string
	GroupID      string
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

// NewMockStore creates a new MockStore with default values
func NewMockStore(groupID string) *MockStore {
	return &MockStore{
		Events:       make(map[string]store.EventDoc),
		Predictions:  make(map[string]store.Prediction),
		Members:      make(map[string]string),
		Leaderboards: make(map[string]store.Leaderboard),
		DatabaseName: "test_db",
		GroupID:      groupID,
	}
}

func predictionKey(eventID, userID, matchID string) string {
	return fmt.Sprintf("%s/%s/%s", eventID, userID, matchID)
}

// GetEvent mock implementation
func (m *MockStore) GetEvent(eventID string) (store.EventDoc, error) {
	if m.GetEventError != nil {
		return store.EventDoc{}, m.GetEventError
	}
	doc, ok := m.Events[eventID]
	if !ok {
		return store.EventDoc{}, mongo.ErrNoDocuments
	}
	return doc, nil
}

// GetGroupEvents mock implementation
func (m *MockStore) GetGroupEvents() ([]store.EventDoc, error) {
	if m.GetGroupEventsError != nil {
		return nil, m.GetGroupEventsError
	}
	var docs []store.EventDoc
	for _, doc := range m.Events {
		docs = append(docs, doc)
	}
	return docs, nil
}

// StoreEvent mock implementation
func (m *MockStore) StoreEvent(event store.EventDoc) error {
	if m.StoreEventError != nil {
		return m.StoreEventError
	}
	event.GroupID = m.GroupID
	m.Events[event.EventID] = event
	return nil
}

// ReplaceEventMatches mock implementation
func (m *MockStore) ReplaceEventMatches(eventID string, matches []shared.Match) error {
	if m.ReplaceEventMatchesError != nil {
		return m.ReplaceEventMatchesError
	}
	doc, ok := m.Events[eventID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	doc.Matches = matches
	m.Events[eventID] = doc
	return nil
}

// StoreUserPrediction mock implementation
func (m *MockStore) StoreUserPrediction(userID string, prediction store.Prediction) error {
	if m.StoreUserPredictionError != nil {
		return m.StoreUserPredictionError
	}
	m.Predictions[predictionKey(prediction.EventID, userID, prediction.MatchID)] = prediction
	return nil
}

// GetUserPredictions mock implementation
func (m *MockStore) GetUserPredictions(userID string, eventID string) ([]store.Prediction, error) {
	if m.GetUserPredictionsError != nil {
		return nil, m.GetUserPredictionsError
	}
	var preds []store.Prediction
	for _, pred := range m.Predictions {
		if pred.UserID == userID && pred.EventID == eventID {
			preds = append(preds, pred)
		}
	}
	return preds, nil
}

// GetAllEventPredictions mock implementation
func (m *MockStore) GetAllEventPredictions(eventID string) ([]store.Prediction, error) {
	if m.GetAllEventPredictionsError != nil {
		return nil, m.GetAllEventPredictionsError
	}
	var preds []store.Prediction
	for _, pred := range m.Predictions {
		if pred.EventID == eventID {
			preds = append(preds, pred)
		}
	}
	return preds, nil
}

// GetGroupMembers mock implementation
func (m *MockStore) GetGroupMembers() (map[string]string, error) {
	if m.GetGroupMembersError != nil {
		return nil, m.GetGroupMembersError
	}
	return m.Members, nil
}

// StoreMember mock implementation
func (m *MockStore) StoreMember(member store.Member) error {
	if m.StoreMemberError != nil {
		return m.StoreMemberError
	}
	m.Members[member.UserID] = member.Username
	return nil
}

// FetchLeaderboardFromDB mock implementation
func (m *MockStore) FetchLeaderboardFromDB(eventID string) ([]store.LeaderboardEntry, error) {
	if m.FetchLeaderboardError != nil {
		return nil, m.FetchLeaderboardError
	}
	lb, ok := m.Leaderboards[eventID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return lb.Entries, nil
}

// StoreLeaderboard mock implementation
func (m *MockStore) StoreLeaderboard(leaderboard store.Leaderboard) error {
	if m.StoreLeaderboardError != nil {
		return m.StoreLeaderboardError
	}
	m.Leaderboards[leaderboard.EventID] = leaderboard
	return nil
}

// Implement getter methods for store.Interface
func (m *MockStore) GetDatabase() interface{ Name() string } {
	return &mockDatabase{name: m.DatabaseName}
}

func (m *MockStore) GetGroupID() string {
	return m.GroupID
}

// mockClient implements minimal client interface
type mockClient struct{}

func (mc *mockClient) Disconnect(ctx context.Context) error {
	return nil
}

func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}

// MockFightsClient implements FightsClient for testing
type MockFightsClient struct {
	// Fights returned for any date unless FightsByDate has an entry for it
	Fights       []external.RawFight
	FightsByDate map[string][]external.RawFight
	// Err is returned from every fetch when set
	Err error
	// Calls records the dates requested
	Calls []string
}

// FetchFightsByDate mock implementation
func (m *MockFightsClient) FetchFightsByDate(ctx context.Context, date string) ([]external.RawFight, error) {
	m.Calls = append(m.Calls, date)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.FightsByDate != nil {
		if fights, ok := m.FightsByDate[date]; ok {
			return fights, nil
		}
	}
	return m.Fights, nil
}
