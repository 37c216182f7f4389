/* models.go
 * This file contains the structs and constants that are shared between sub packages
 * Authors: Roman Divkovic
 */

package shared

import "time"

// Status is the canonical three-state lifecycle model for both matches and events.
// External status codes are normalized into this set at the boundary.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

type User struct {
	UserID   string
	Username string
}

// Fighter is one competitor inside a match
type Fighter struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Record  string `bson:"record" json:"record"`
	Country string `bson:"country" json:"country"`
}

// MatchResult holds the decided outcome of a completed match. WinnerID always
// equals the id of one of the two fighters. A completed match with no result
// means the bout was cancelled.
type MatchResult struct {
	WinnerID string `bson:"winner_id" json:"winnerId"`
	Method   string `bson:"method" json:"method"`
}

// Match is one contest between two fighters within an event
type Match struct {
	ID       string       `bson:"id" json:"id"`
	Fighter1 Fighter      `bson:"fighter1" json:"fighter1"`
	Fighter2 Fighter      `bson:"fighter2" json:"fighter2"`
	Status   Status       `bson:"status" json:"status"`
	Order    int          `bson:"order" json:"order"`
	Result   *MatchResult `bson:"result,omitempty" json:"result,omitempty"`
}

// Event is a scheduled card of matches owned by a group. Matches is always a
// well formed ordered slice, never nil, once the event has been assembled.
type Event struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"groupId"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location,omitempty"`
	Status    Status    `json:"status"`
	Matches   []Match   `json:"matches"`
	CreatedAt time.Time `json:"createdAt"`
}
