/* events_test.go
 * Contains unit tests for events.go functions
 * Authors: Roman Divkovic
 */

package api

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"betbuddy-bot/api/external"
	"betbuddy-bot/api/logic"
	"betbuddy-bot/api/shared"
	"betbuddy-bot/api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func newTestAPI() (*API, *MockStore, *MockFightsClient) {
	mockStore := NewMockStore("test_group")
	mockFights := &MockFightsClient{}
	return &API{
		Store:  mockStore,
		Fights: mockFights,
		Policy: logic.DefaultScoringPolicy,
	}, mockStore, mockFights
}

func boolPtr(b bool) *bool {
	return &b
}

// rawFightFor builds a raw provider record for the given slug
func rawFightFor(id string, slug string, first string, second string) external.RawFight {
	raw := external.RawFight{
		ID:   json.Number(id),
		Slug: slug,
		Date: "2024-05-01T00:00:00+00:00",
	}
	raw.Status.Short = "NS"
	raw.Fighters.First = &external.RawFighter{ID: json.Number(id + "1"), Name: first}
	raw.Fighters.Second = &external.RawFighter{ID: json.Number(id + "2"), Name: second}
	return raw
}

func storedMatches() []shared.Match {
	return []shared.Match{
		{
			ID:       "101",
			Fighter1: shared.Fighter{ID: "f1", Name: "Jon Jones", Record: "27-1-0"},
			Fighter2: shared.Fighter{ID: "f2", Name: "Stipe Miocic", Record: "20-4-0"},
			Status:   shared.StatusCompleted,
			Order:    1,
			Result:   &shared.MatchResult{WinnerID: "f1", Method: "KO/TKO"},
		},
		{
			ID:       "102",
			Fighter1: shared.Fighter{ID: "f3", Name: "Alex Pereira"},
			Fighter2: shared.Fighter{ID: "f4", Name: "Jiri Prochazka"},
			Status:   shared.StatusUpcoming,
			Order:    2,
		},
	}
}

// region AssembleEvent tests

func TestAssembleEvent_MissingEvent(t *testing.T) {
	api, _, _ := newTestAPI()

	_, err := api.AssembleEvent("nope")

	assert.Error(t, err)
	assert.Equal(t, mongo.ErrNoDocuments, err)
}

func TestAssembleEvent_UsesStoredMatches(t *testing.T) {
	api, mockStore, mockFights := newTestAPI()
	mockStore.Events["event-1"] = store.EventDoc{
		EventID: "event-1",
		Title:   "UFC 300",
		Date:    time.Now().Add(72 * time.Hour),
		Status:  shared.StatusUpcoming,
		Matches: storedMatches(),
	}

	event, err := api.AssembleEvent("event-1")

	require.NoError(t, err)
	assert.Len(t, event.Matches, 2)
	assert.Equal(t, "101", event.Matches[0].ID)
	// Stored matches satisfy assembly without touching the provider
	assert.Empty(t, mockFights.Calls)
}

func TestAssembleEvent_StoredMatchesAreOrdered(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	matches := storedMatches()
	// Store them out of card order
	matches[0], matches[1] = matches[1], matches[0]
	mockStore.Events["event-1"] = store.EventDoc{
		EventID: "event-1",
		Date:    time.Now().Add(72 * time.Hour),
		Matches: matches,
	}

	event, err := api.AssembleEvent("event-1")

	require.NoError(t, err)
	assert.Equal(t, 1, event.Matches[0].Order)
	assert.Equal(t, 2, event.Matches[1].Order)
}

func TestAssembleEvent_FallsBackToFightIDs(t *testing.T) {
	api, mockStore, mockFights := newTestAPI()
	mockStore.Events["event-1"] = store.EventDoc{
		EventID: "event-1",
		Title:   "card-9",
		Date:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Fights:  []string{"55", "56"},
		APISlug: "card-9",
	}
	// The provider returns an extra fight 57 that does not belong to the event
	mockFights.Fights = []external.RawFight{
		rawFightFor("55", "card-9", "Fighter A", "Fighter B"),
		rawFightFor("56", "card-9", "Fighter C", "Fighter D"),
		rawFightFor("57", "card-9", "Fighter E", "Fighter F"),
	}

	event, err := api.AssembleEvent("event-1")

	require.NoError(t, err)
	require.Len(t, event.Matches, 2)
	assert.Equal(t, "55", event.Matches[0].ID)
	assert.Equal(t, "56", event.Matches[1].ID)
	assert.Equal(t, []string{"2024-05-01"}, mockFights.Calls)
}

func TestAssembleEvent_FallsBackToSlugAndDate(t *testing.T) {
	api, mockStore, mockFights := newTestAPI()
	mockStore.Events["event-1"] = store.EventDoc{
		EventID: "event-1",
		Title:   "card-9",
		Date:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		APISlug: "card-9",
	}
	mockFights.Fights = []external.RawFight{
		rawFightFor("55", "card-9", "Fighter A", "Fighter B"),
		rawFightFor("60", "other-card", "Fighter X", "Fighter Y"),
	}

	event, err := api.AssembleEvent("event-1")

	require.NoError(t, err)
	require.Len(t, event.Matches, 1)
	assert.Equal(t, "55", event.Matches[0].ID)
}

func TestAssembleEvent_NoSourceYieldsEmptyMatches(t *testing.T) {
	api, mockStore, mockFights := newTestAPI()
	mockStore.Events["event-1"] = store.EventDoc{
		EventID: "event-1",
		Title:   "mystery card",
		Date:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	event, err := api.AssembleEvent("event-1")

	require.NoError(t, err)
	assert.NotNil(t, event.Matches)
	assert.Len(t, event.Matches, 0)
	assert.Empty(t, mockFights.Calls)
}

func TestAssembleEvent_FetchFailureDegradesToEmpty(t *testing.T) {
	// An external failure must not make the event unreadable
	api, mockStore, mockFights := newTestAPI()
	mockStore.Events["event-1"] = store.EventDoc{
		EventID: "event-1",
		Title:   "card-9",
		Date:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		APISlug: "card-9",
	}
	mockFights.Err = external.ErrUpstreamUnavailable

	event, err := api.AssembleEvent("event-1")

	require.NoError(t, err)
	assert.NotNil(t, event.Matches)
	assert.Len(t, event.Matches, 0)
	assert.Equal(t, "card-9", event.Title)
}

func TestAssembleEvent_MalformedRecordIsSkipped(t *testing.T) {
	api, mockStore, mockFights := newTestAPI()
	mockStore.Events["event-1"] = store.EventDoc{
		EventID: "event-1",
		Date:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		APISlug: "card-9",
	}
	bad := rawFightFor("56", "card-9", "Fighter C", "Fighter D")
	bad.Fighters.Second = nil
	mockFights.Fights = []external.RawFight{
		rawFightFor("55", "card-9", "Fighter A", "Fighter B"),
		bad,
	}

	event, err := api.AssembleEvent("event-1")

	require.NoError(t, err)
	require.Len(t, event.Matches, 1)
	assert.Equal(t, "55", event.Matches[0].ID)
}

func TestAssembleEvent_ResolvesStatus(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.Events["event-1"] = store.EventDoc{
		EventID: "event-1",
		Date:    time.Now().Add(time.Hour),
		Status:  shared.StatusUpcoming,
		Matches: storedMatches(),
	}

	event, err := api.AssembleEvent("event-1")

	require.NoError(t, err)
	// One hour out is inside the live window
	assert.Equal(t, shared.StatusLive, event.Status)
}

// endregion

// region CreateEvent tests

func TestCreateEvent_InvalidDate(t *testing.T) {
	api, _, _ := newTestAPI()

	_, err := api.CreateEvent(shared.User{UserID: "u1"}, "ufc-300", "13/04/2024")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestCreateEvent_NoFightsForSlug(t *testing.T) {
	api, _, mockFights := newTestAPI()
	mockFights.Fights = []external.RawFight{
		rawFightFor("55", "other-card", "Fighter A", "Fighter B"),
	}

	_, err := api.CreateEvent(shared.User{UserID: "u1"}, "ufc-300", "2024-05-01")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no fights found")
}

func TestCreateEvent_FetchFailure(t *testing.T) {
	api, _, mockFights := newTestAPI()
	mockFights.Err = external.ErrUpstreamUnavailable

	_, err := api.CreateEvent(shared.User{UserID: "u1"}, "ufc-300", "2024-05-01")

	assert.Error(t, err)
	assert.ErrorIs(t, err, external.ErrUpstreamUnavailable)
}

func TestCreateEvent_Success(t *testing.T) {
	api, mockStore, mockFights := newTestAPI()
	mockFights.Fights = []external.RawFight{
		rawFightFor("55", "ufc-300", "Fighter A", "Fighter B"),
		rawFightFor("56", "ufc-300", "Fighter C", "Fighter D"),
		rawFightFor("60", "other-card", "Fighter X", "Fighter Y"),
	}

	event, err := api.CreateEvent(shared.User{UserID: "u1"}, "ufc-300", "2024-05-01")

	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "ufc-300", event.Title)
	assert.Len(t, event.Matches, 2)

	// The stored doc keeps the fight ids and slug for later refreshes
	doc := mockStore.Events[event.ID]
	assert.Equal(t, []string{"55", "56"}, doc.Fights)
	assert.Equal(t, "ufc-300", doc.APISlug)
	assert.Len(t, doc.Matches, 2)
}

// endregion

// region RefreshEventResults tests

func TestRefreshEventResults_MissingEvent(t *testing.T) {
	api, _, _ := newTestAPI()

	err := api.RefreshEventResults("nope")

	assert.Error(t, err)
	assert.Equal(t, mongo.ErrNoDocuments, err)
}

func TestRefreshEventResults_NoExternalSource(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.Events["event-1"] = store.EventDoc{
		EventID: "event-1",
		Matches: storedMatches(),
	}

	err := api.RefreshEventResults("event-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no external source")
}

func TestRefreshEventResults_ReplacesMatchesAndLeaderboard(t *testing.T) {
	api, mockStore, mockFights := newTestAPI()
	mockStore.Events["event-1"] = store.EventDoc{
		EventID: "event-1",
		Date:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Fights:  []string{"55"},
		APISlug: "ufc-300",
	}

	// Provider now reports the fight finished with a winner
	finished := rawFightFor("55", "ufc-300", "Fighter A", "Fighter B")
	finished.Status.Short = "FT"
	finished.Method = "Submission"
	finished.Fighters.First.Winner = boolPtr(true)
	finished.Fighters.Second.Winner = boolPtr(false)
	mockFights.Fights = []external.RawFight{finished}

	pred := store.Prediction{
		EventID:           "event-1",
		UserID:            "u1",
		MatchID:           "55",
		PredictedWinnerID: "551",
		Method:            "Submission",
		CreatedAt:         time.Now(),
	}
	require.NoError(t, mockStore.StoreUserPrediction("u1", pred))

	err := api.RefreshEventResults("event-1")

	require.NoError(t, err)
	doc := mockStore.Events["event-1"]
	require.Len(t, doc.Matches, 1)
	require.NotNil(t, doc.Matches[0].Result)
	assert.Equal(t, "551", doc.Matches[0].Result.WinnerID)

	// The leaderboard cache was recomputed from the new results
	lb, ok := mockStore.Leaderboards["event-1"]
	require.True(t, ok)
	require.Len(t, lb.Entries, 1)
	assert.Equal(t, 2, lb.Entries[0].Points)
}

func TestRefreshEventResults_FetchFailureIsFatal(t *testing.T) {
	// Unlike assembly, an explicit refresh surfaces the provider failure
	api, mockStore, mockFights := newTestAPI()
	mockStore.Events["event-1"] = store.EventDoc{
		EventID: "event-1",
		Date:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		APISlug: "ufc-300",
	}
	mockFights.Err = errors.New("boom")

	err := api.RefreshEventResults("event-1")

	assert.Error(t, err)
}

// endregion

// region GetEvents and GetEventCard tests

func TestGetEvents_FormatsLines(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.Events["event-1"] = store.EventDoc{
		EventID: "event-1",
		Title:   "UFC 300",
		Date:    time.Now().Add(96 * time.Hour),
		Status:  shared.StatusUpcoming,
	}

	lines, err := api.GetEvents()

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "UFC 300")
	assert.Contains(t, lines[0], "[event-1]")
	assert.Contains(t, lines[0], "(upcoming)")
}

func TestGetEventCard_ShowsResults(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.Events["event-1"] = store.EventDoc{
		EventID: "event-1",
		Date:    time.Now().Add(-96 * time.Hour),
		Status:  shared.StatusCompleted,
		Matches: storedMatches(),
	}

	lines, err := api.GetEventCard("event-1")

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Jon Jones")
	assert.Contains(t, lines[0], "Jon Jones by KO/TKO")
	assert.Contains(t, lines[1], "Alex Pereira")
	assert.NotContains(t, lines[1], "by")
}

func TestGetEventCard_MarksCancelledMatch(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	matches := []shared.Match{
		{
			ID:       "101",
			Fighter1: shared.Fighter{ID: "f1", Name: "Jon Jones"},
			Fighter2: shared.Fighter{ID: "f2", Name: "Stipe Miocic"},
			Status:   shared.StatusCompleted,
			Order:    1,
		},
	}
	mockStore.Events["event-1"] = store.EventDoc{
		EventID: "event-1",
		Date:    time.Now().Add(-96 * time.Hour),
		Matches: matches,
	}

	lines, err := api.GetEventCard("event-1")

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "cancelled")
}

// endregion
