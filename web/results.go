/* results.go
 * Contains the HTTP handlers for the results webhook and the leaderboard endpoint
 * Authors: Roman Divkovic
 */

package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// ResultsEvent is the webhook payload announcing that results may have changed
// for an event
type ResultsEvent struct {
	EventID string `json:"eventId"`
	Source  string `json:"source"`
}

// ResultsWebhookHandler HTTP endpoint that receives a webhook when fight results
// change, used to kick off refreshing stored matches and recalculating user scores
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: Kicks off the refresh functions for the event matches and leaderboard data
func (s *Server) ResultsWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var event ResultsEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Println("failed to decode webhook:", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if event.EventID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	log.Printf("Results event eventId=%s source=%s\n", event.EventID, event.Source)

	// Kick async pipeline so the webhook sender isn't kept waiting on the fights api
	go func(e ResultsEvent) {
		if err := s.api.RefreshEventResults(e.EventID); err != nil {
			log.Println("RefreshEventResults failed:", err)
		}
	}(event)

	w.WriteHeader(http.StatusOK)
}

// LeaderboardHandler HTTP endpoint that serves the ranked leaderboard for an event
// as JSON, for use outside of discord
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: Writes the leaderboard entries as a JSON array, 404 when the event has
// no leaderboard yet
func (s *Server) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	eventID := r.URL.Query().Get("eventId")
	if eventID == "" {
		http.Error(w, "eventId query parameter is required", http.StatusBadRequest)
		return
	}

	entries, err := s.api.Store.FetchLeaderboardFromDB(eventID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		http.Error(w, "no leaderboard for this event", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Println("failed to fetch leaderboard:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		log.Println("failed to encode leaderboard:", err)
	}
}
