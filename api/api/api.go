/* api.go
 * This file contains the public methods for interacting with this package. For consistent results,
 * functions should only be called from this file, not the sub packages for store, logic and external.
 * Event assembly methods live in events.go
 * Authors: Roman Divkovic
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"betbuddy-bot/api/external"
	"betbuddy-bot/api/logic"
	"betbuddy-bot/api/shared"
	"betbuddy-bot/api/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// FightsClient is the read-only external fight data provider, abstracted for testing
type FightsClient interface {
	FetchFightsByDate(ctx context.Context, date string) ([]external.RawFight, error)
}

// API provides methods for interacting with the betbuddy data layer
type API struct {
	Store  store.Interface
	Fights FightsClient
	Policy logic.ScoringPolicy
}

// NewAPI creates a new API instance with the provided configuration
func NewAPI(dbName string, mongoURI string, groupID string, fightsAPIKey string) (*API, error) {
	if dbName == "" || groupID == "" {
		return nil, fmt.Errorf("dbName and groupID are required")
	}

	s, err := store.NewStore(dbName, mongoURI, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store:  s,
		Fights: external.NewClient(fightsAPIKey),
		Policy: logic.DefaultScoringPolicy,
	}, nil
}

// SetUserPrediction contains the logic to set a user prediction in the DB.
// The fighter is resolved against the event card by fuzzy name match and the method
// against the closed method set. Predictions are only accepted while the event is
// still open, and resubmitting overwrites the user's own prediction for that match.
// Preconditions: Receives a user struct, the eventID, and the raw fighter and method input
// Postconditions: Updates the user's prediction in the database, or returns an error if it occurs
func (a *API) SetUserPrediction(user shared.User, eventID string, fighterInput string, methodInput string) error {
	event, err := a.AssembleEvent(eventID)
	if err != nil {
		return err
	}

	if !logic.PredictionsOpen(event.Status, event.Date, time.Now()) {
		return fmt.Errorf("predictions for '%s' are closed", event.Title)
	}

	matchID, fighterID, err := logic.ResolveFighter(fighterInput, event.Matches)
	if err != nil {
		return err
	}

	method, err := logic.CanonicalMethod(methodInput)
	if err != nil {
		return err
	}

	prediction := store.Prediction{
		EventID:           eventID,
		UserID:            user.UserID,
		Username:          user.Username,
		MatchID:           matchID,
		PredictedWinnerID: fighterID,
		Method:            method,
		CreatedAt:         time.Now(),
	}

	if err := a.Store.StoreUserPrediction(user.UserID, prediction); err != nil {
		return err
	}

	// Refresh the membership record so leaderboards show the user's current display name
	member := store.Member{UserID: user.UserID, Username: user.Username}
	if err := a.Store.StoreMember(member); err != nil {
		log.Println("warning: failed to update member record:", err)
	}
	return nil
}

// CheckPredictions contains the logic required to check a user's predictions for an event.
// Preconditions: Receives a user struct and the eventID
// Postconditions: Returns a string report of the user's predictions with their current
// outcome, or an error if it occurs. mongo.ErrNoDocuments is returned when the user has
// no predictions stored for the event.
func (a *API) CheckPredictions(user shared.User, eventID string) (string, error) {
	event, err := a.AssembleEvent(eventID)
	if err != nil {
		return "", err
	}

	preds, err := a.Store.GetUserPredictions(user.UserID, eventID)
	if err != nil {
		return "", err
	}
	if len(preds) == 0 {
		return "", mongo.ErrNoDocuments
	}

	matchesByID := make(map[string]shared.Match, len(event.Matches))
	for _, match := range event.Matches {
		matchesByID[match.ID] = match
	}

	var successes, failed, pending, points int
	var report strings.Builder
	report.WriteString(fmt.Sprintf("%s's picks for %s:\n", user.Username, event.Title))

	for _, pred := range preds {
		match, ok := matchesByID[pred.MatchID]
		if !ok {
			pending++
			report.WriteString(fmt.Sprintf("- %s by %s: pending\n", a.fighterName(event.Matches, pred.PredictedWinnerID), pred.Method))
			continue
		}

		scored, err := logic.EvaluatePrediction(pred, match, a.Policy)
		if err != nil {
			return "", err
		}

		pickName := pickedFighterName(match, pred.PredictedWinnerID)
		switch {
		case scored.IsCorrect == nil:
			pending++
			report.WriteString(fmt.Sprintf("- %s by %s: pending\n", pickName, pred.Method))
		case *scored.IsCorrect:
			successes++
			points += scored.PointsEarned
			report.WriteString(fmt.Sprintf("- %s by %s: correct (+%d)\n", pickName, pred.Method, scored.PointsEarned))
		default:
			failed++
			report.WriteString(fmt.Sprintf("- %s by %s: wrong\n", pickName, pred.Method))
		}
	}

	report.WriteString(fmt.Sprintf("Total: %d points, %d correct, %d wrong, %d pending\n", points, successes, failed, pending))
	return report.String(), nil
}

// GenerateLeaderboard contains the logic required to generate the leaderboard for an event.
// Preconditions: Receives the eventID
// Postconditions: Recomputes the leaderboard from predictions and matches, stores the
// result in the DB cache and returns nil, or returns an error if it occurs
func (a *API) GenerateLeaderboard(eventID string) error {
	event, err := a.AssembleEvent(eventID)
	if err != nil {
		return err
	}

	preds, err := a.Store.GetAllEventPredictions(eventID)
	if err != nil {
		return err
	}

	members, err := a.Store.GetGroupMembers()
	if err != nil {
		return err
	}

	entries := logic.BuildLeaderboard(event.Matches, preds, members, a.Policy)
	if len(entries) == 0 {
		// Nothing to store, nobody has predicted yet
		return nil
	}

	leaderboard := store.Leaderboard{
		EventID:   eventID,
		UpdatedAt: time.Now(),
		Entries:   entries,
	}
	return a.Store.StoreLeaderboard(leaderboard)
}

// GetLeaderboard fetches the leaderboard for an event and generates a response string.
// The cached document is served when present, recomputing on a cache miss.
// Preconditions: Receives the eventID
// Postconditions: Returns a string with the ranked leaderboard for the event, or an
// error if it occurs
func (a *API) GetLeaderboard(eventID string) (string, error) {
	entries, err := a.Store.FetchLeaderboardFromDB(eventID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if err := a.GenerateLeaderboard(eventID); err != nil {
			return "", err
		}
		entries, err = a.Store.FetchLeaderboardFromDB(eventID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "No predictions have been made for this event yet", nil
		}
		if err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}

	// Stored entries are already ranked, but re-sort by points in case the cache
	// was written by an older version without the tie-break order
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})

	var response strings.Builder
	response.WriteString("Leaderboard:\n")
	for i, entry := range entries {
		response.WriteString(fmt.Sprintf("%d. %s: %d points (%d/%d correct)\n",
			i+1, entry.Username, entry.Points, entry.CorrectPredictions, entry.TotalPredictions))
	}
	return response.String(), nil
}

// fighterName resolves a fighter id to a display name across an event's matches,
// falling back to the raw id
func (a *API) fighterName(matches []shared.Match, fighterID string) string {
	for _, match := range matches {
		if match.Fighter1.ID == fighterID {
			return match.Fighter1.Name
		}
		if match.Fighter2.ID == fighterID {
			return match.Fighter2.Name
		}
	}
	return fighterID
}

// pickedFighterName resolves the predicted winner id against the two fighters of a match
func pickedFighterName(match shared.Match, fighterID string) string {
	switch fighterID {
	case match.Fighter1.ID:
		return match.Fighter1.Name
	case match.Fighter2.ID:
		return match.Fighter2.Name
	}
	return fighterID
}
