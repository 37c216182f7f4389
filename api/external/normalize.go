/* normalize.go
 * Contains the match result normalizer. Converts raw fight records from the external api
 * into the canonical Match model used across the application
 * Authors: Roman Divkovic
 */

package external

import (
	"errors"
	"fmt"

	"betbuddy-bot/api/shared"
)

// ErrMalformedSource marks a raw fight record that lacks required competitor fields.
// The record is rejected rather than half-populated.
var ErrMalformedSource = errors.New("malformed fight record")

// Status codes the fights api uses for decided and in-progress bouts
const (
	statusFinished  = "FT"
	statusCancelled = "CANC"
	statusLive      = "LIVE"
)

// NormalizeFight converts a raw fight record into a canonical Match
// Preconditions: Receives a RawFight and the 1-based ordinal position of the fight on the card
// Postconditions: Returns the canonical Match, or an ErrMalformedSource wrapped error if a
// competitor sub-record is missing
func NormalizeFight(raw RawFight, order int) (shared.Match, error) {
	if raw.Fighters.First == nil || raw.Fighters.Second == nil {
		return shared.Match{}, fmt.Errorf("%w: fight %s is missing a competitor", ErrMalformedSource, raw.ID.String())
	}

	match := shared.Match{
		ID:       raw.ID.String(),
		Fighter1: normalizeFighter(raw.Fighters.First),
		Fighter2: normalizeFighter(raw.Fighters.Second),
		Status:   normalizeStatus(raw.Status.Short),
		Order:    order,
	}

	// Cancelled bouts are treated as completed with no winner, so the result is
	// only attached for bouts that actually finished with a decided winner
	if raw.Status.Short == statusFinished {
		if winnerID := winnerOf(raw); winnerID != "" {
			match.Result = &shared.MatchResult{
				WinnerID: winnerID,
				Method:   raw.Method,
			}
		}
	}

	return match, nil
}

// NormalizeFights converts a slice of raw fight records into canonical Matches, assigning
// ordinal positions from the provider's ordering. Malformed records are reported
// individually so one bad record cannot reject a whole card.
// Preconditions: Receives slice of RawFight
// Postconditions: Returns the normalized matches and a slice of per-record errors
func NormalizeFights(raws []RawFight) ([]shared.Match, []error) {
	matches := make([]shared.Match, 0, len(raws))
	var errs []error

	for _, raw := range raws {
		match, err := NormalizeFight(raw, len(matches)+1)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		matches = append(matches, match)
	}
	return matches, errs
}

// normalizeFighter extracts a Fighter with nullable-safe field access, missing
// fields become empty strings
func normalizeFighter(raw *RawFighter) shared.Fighter {
	return shared.Fighter{
		ID:      raw.ID.String(),
		Name:    raw.Name,
		Record:  raw.Record,
		Country: raw.Country,
	}
}

// normalizeStatus maps the provider status codes onto the canonical three-state model.
// Finished and cancelled bouts are both completed, anything unrecognised is upcoming.
func normalizeStatus(short string) shared.Status {
	switch short {
	case statusFinished, statusCancelled:
		return shared.StatusCompleted
	case statusLive:
		return shared.StatusLive
	default:
		return shared.StatusUpcoming
	}
}

// winnerOf returns the id of the fighter flagged as winner, or empty string if
// neither competitor has been flagged yet
func winnerOf(raw RawFight) string {
	if raw.Fighters.First.Winner != nil && *raw.Fighters.First.Winner {
		return raw.Fighters.First.ID.String()
	}
	if raw.Fighters.Second.Winner != nil && *raw.Fighters.Second.Winner {
		return raw.Fighters.Second.ID.String()
	}
	return ""
}
