/* events.go
 * Contains event assembly and event management. Assembly merges stored event metadata with
 * match data, filling in matches from the external fights api when the store lacks them.
 * The backing store holds events in two historical shapes (embedded matches vs embedded
 * fight-reference lists) and both are tolerated without a data migration
 * Authors: Roman Divkovic
 */

package api

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"betbuddy-bot/api/external"
	"betbuddy-bot/api/logic"
	"betbuddy-bot/api/shared"
	"betbuddy-bot/api/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const apiDateLayout = "2006-01-02"

// AssembleEvent produces one Event whose matches field is always a well formed ordered
// list. Resolution order: stored matches, then stored fight ids + slug + date, then slug
// + date alone, then empty. Any external fetch failure degrades to an empty match list
// with a warning, the caller always sees a valid Event.
// Preconditions: Receives string containing the eventID
// Postconditions: Returns the assembled Event with its resolved status, or an error only
// when the event itself is missing from the store
func (a *API) AssembleEvent(eventID string) (shared.Event, error) {
	doc, err := a.Store.GetEvent(eventID)
	if err != nil {
		return shared.Event{}, err
	}

	matches := a.assembleMatches(doc)

	return shared.Event{
		ID:        doc.EventID,
		GroupID:   doc.GroupID,
		Title:     doc.Title,
		Date:      doc.Date,
		Location:  doc.Location,
		Status:    logic.ResolveEventStatus(doc.Status, doc.Date, time.Now()),
		Matches:   matches,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// assembleMatches resolves the match list for a stored event through the fallback chain
func (a *API) assembleMatches(doc store.EventDoc) []shared.Match {
	// (1) the stored event already carries matches, order and use as-is
	if len(doc.Matches) > 0 {
		matches := make([]shared.Match, len(doc.Matches))
		copy(matches, doc.Matches)
		sort.Slice(matches, func(i, j int) bool {
			return matches[i].Order < matches[j].Order
		})
		return matches
	}

	// (2) legacy shape: fight ids plus slug and date, fetch and filter by id
	if len(doc.Fights) > 0 && doc.APISlug != "" && !doc.Date.IsZero() {
		matches, err := a.fetchEventMatches(doc, true)
		if err != nil {
			log.Println("warning: failed to fetch matches for event", doc.EventID, ":", err)
			return []shared.Match{}
		}
		return matches
	}

	// (3) slug and date only, fetch all fights for the date and filter to the slug
	if doc.APISlug != "" && !doc.Date.IsZero() {
		matches, err := a.fetchEventMatches(doc, false)
		if err != nil {
			log.Println("warning: failed to fetch matches for event", doc.EventID, ":", err)
			return []shared.Match{}
		}
		return matches
	}

	// (4) nothing to resolve from
	return []shared.Match{}
}

// fetchEventMatches fetches the raw fights for an event's date and normalizes the ones
// belonging to the event, selected by fight id when byIDs is set, else by slug
func (a *API) fetchEventMatches(doc store.EventDoc, byIDs bool) ([]shared.Match, error) {
	raws, err := a.Fights.FetchFightsByDate(context.TODO(), doc.Date.Format(apiDateLayout))
	if err != nil {
		return nil, err
	}

	var kept []external.RawFight
	if byIDs {
		wanted := make(map[string]bool, len(doc.Fights))
		for _, id := range doc.Fights {
			wanted[id] = true
		}
		for _, raw := range raws {
			if wanted[raw.ID.String()] {
				kept = append(kept, raw)
			}
		}
	} else {
		for _, raw := range raws {
			if raw.Slug == doc.APISlug {
				kept = append(kept, raw)
			}
		}
	}

	matches, errs := external.NormalizeFights(kept)
	for _, err := range errs {
		// A malformed record is dropped on its own, it must not reject the card
		log.Println("warning: skipping fight for event", doc.EventID, ":", err)
	}
	return matches, nil
}

// CreateEvent creates a new event for the group from externally fetched fight data
// Preconditions: Receives the creating user, the provider slug and a date string (YYYY-MM-DD)
// Postconditions: Stores the new event with its normalized matches and returns it, or an
// error if the provider has no fights for the slug and date
func (a *API) CreateEvent(user shared.User, slug string, date string) (shared.Event, error) {
	start, err := time.Parse(apiDateLayout, date)
	if err != nil {
		return shared.Event{}, fmt.Errorf("invalid date '%s', expected YYYY-MM-DD", date)
	}

	raws, err := a.Fights.FetchFightsByDate(context.TODO(), date)
	if err != nil {
		return shared.Event{}, err
	}

	var kept []external.RawFight
	for _, raw := range raws {
		if raw.Slug == slug {
			kept = append(kept, raw)
		}
	}
	if len(kept) == 0 {
		return shared.Event{}, fmt.Errorf("no fights found for '%s' on %s", slug, date)
	}

	matches, errs := external.NormalizeFights(kept)
	for _, err := range errs {
		log.Println("warning: skipping fight for new event", slug, ":", err)
	}

	// Keep the fight ids and slug alongside the embedded matches so results can be
	// refreshed from the provider later
	fightIDs := make([]string, 0, len(matches))
	for _, match := range matches {
		fightIDs = append(fightIDs, match.ID)
	}

	doc := store.EventDoc{
		EventID:   primitive.NewObjectID().Hex(),
		GroupID:   a.Store.GetGroupID(),
		Title:     slug,
		Date:      start,
		Status:    shared.StatusUpcoming,
		Matches:   matches,
		Fights:    fightIDs,
		APISlug:   slug,
		CreatedAt: time.Now(),
	}
	if err := a.Store.StoreEvent(doc); err != nil {
		return shared.Event{}, err
	}

	log.Printf("created event %s (%s) with %d matches for user %s\n", doc.EventID, slug, len(matches), user.UserID)
	return a.AssembleEvent(doc.EventID)
}

// RefreshEventResults re-fetches an event's matches from the external provider, replaces
// the stored match list wholesale and recomputes the cached leaderboard
// Preconditions: Receives string containing the eventID
// Postconditions: Updates the stored matches and leaderboard, or returns an error if the
// event is unknown or the provider fetch fails
func (a *API) RefreshEventResults(eventID string) error {
	doc, err := a.Store.GetEvent(eventID)
	if err != nil {
		return err
	}
	if doc.APISlug == "" || doc.Date.IsZero() {
		return fmt.Errorf("event %s has no external source to refresh from", eventID)
	}

	matches, err := a.fetchEventMatches(doc, len(doc.Fights) > 0)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("provider returned no fights for event %s", eventID)
	}

	if err := a.Store.ReplaceEventMatches(eventID, matches); err != nil {
		return err
	}

	return a.GenerateLeaderboard(eventID)
}

// GetEvents lists the group's events with their resolved status
// Preconditions: None
// Postconditions: Returns a string slice, one line per event sorted by date, or an error
// if it occurs
func (a *API) GetEvents() ([]string, error) {
	docs, err := a.Store.GetGroupEvents()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var lines []string
	for _, doc := range docs {
		status := logic.ResolveEventStatus(doc.Status, doc.Date, now)
		lines = append(lines, fmt.Sprintf("- %s [%s] %s (%s)", doc.Title, doc.EventID, doc.Date.Format("2006-01-02"), status))
	}
	return lines, nil
}

// GetEventCard renders the ordered match card of an event
// Preconditions: Receives string containing the eventID
// Postconditions: Returns a string slice, one line per match in card order, or an error
// if it occurs
func (a *API) GetEventCard(eventID string) ([]string, error) {
	event, err := a.AssembleEvent(eventID)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, match := range event.Matches {
		line := fmt.Sprintf("%d. %s (%s) vs %s (%s)",
			match.Order, match.Fighter1.Name, match.Fighter1.Record, match.Fighter2.Name, match.Fighter2.Record)
		switch {
		case match.Result != nil:
			line += fmt.Sprintf(" - %s by %s", pickedFighterName(match, match.Result.WinnerID), match.Result.Method)
		case match.Status == shared.StatusCompleted:
			line += " - cancelled"
		case match.Status == shared.StatusLive:
			line += " - live"
		}
		lines = append(lines, line)
	}
	return lines, nil
}
