/* status.go
 * Contains the single event status resolution rule. Status is derived from both the stored
 * flag and the scheduled start time, and every code path that needs display status or
 * prediction eligibility must go through these functions rather than recomputing ad hoc
 * Authors: Roman Divkovic
 */

package logic

import (
	"time"

	"betbuddy-bot/api/shared"
)

// liveWindow is how far either side of the scheduled start an event is presumed live
// when the stored status does not already say otherwise
const liveWindow = 6 * time.Hour

// ResolveEventStatus resolves the effective status of an event
// Preconditions: Receives the stored status, the scheduled start time and the current time
// Postconditions: Returns the stored status if it is live or completed. Otherwise returns
// live while now is within the live window of the start, upcoming while the start is still
// in the future, and completed once it is past.
func ResolveEventStatus(stored shared.Status, start time.Time, now time.Time) shared.Status {
	switch stored {
	case shared.StatusLive, shared.StatusCompleted:
		return stored
	}

	diff := now.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	if diff <= liveWindow {
		return shared.StatusLive
	}
	if start.After(now) {
		return shared.StatusUpcoming
	}
	return shared.StatusCompleted
}

// PredictionsOpen reports whether predictions may still be submitted for an event.
// An event accepts predictions only while its resolved status is upcoming and the
// scheduled start is in the future.
func PredictionsOpen(stored shared.Status, start time.Time, now time.Time) bool {
	return ResolveEventStatus(stored, start, now) == shared.StatusUpcoming && start.After(now)
}
