package validation

import (
	"fmt"
	"time"

	"github.com/rmorales/eventhub/internal/helpers"
	"github.com/rmorales/eventhub/internal/models"
)

// EventUpdate carries the fields an update request wants to change.
// A nil pointer means the field was not part of the request.
type EventUpdate struct {
	Name        *string
	Description *string
	Location    *string
	StartDate   *time.Time
	EndDate     *time.Time
	Capacity    *int
	Status      *models.EventStatus
}

// ValidateStatusTransition enforces the manual-status state machine.
// Only scheduled and cancelled can ever be stored; ongoing and
// completed are derived and can never be assigned. A completed event
// is frozen, and a cancelled event can only be reactivated before its
// start date.
func ValidateStatusTransition(event *models.Event, newStatus models.EventStatus, now time.Time) error {
	if event.Status == newStatus {
		return nil
	}

	if !newStatus.Storable() {
		return helpers.NewValidationError(fmt.Sprintf(
			"Cannot assign status %s manually. Ongoing and completed are computed from the event dates.", newStatus))
	}

	if event.ComputedStatusAt(now) == models.StatusCompleted {
		return helpers.NewValidationError("Cannot change the status of a completed event.")
	}

	if event.Status == models.StatusScheduled && newStatus == models.StatusCancelled {
		return nil
	}

	if event.Status == models.StatusCancelled {
		if newStatus == models.StatusScheduled {
			if now.Before(event.StartDate) {
				return nil
			}
			return helpers.NewValidationError("Cannot reactivate a cancelled event that has already started.")
		}
		return helpers.NewValidationError(fmt.Sprintf(
			"Cannot change a cancelled event to %s. It can only be reactivated to scheduled before it starts.", newStatus))
	}

	return helpers.NewValidationError(fmt.Sprintf(
		"Status transition from %s to %s is not allowed.", event.Status, newStatus))
}

// ValidateFieldEditable decides whether a field may change given the
// event's computed status. Capacity value checks are separate, see
// ValidateCapacityChange.
func ValidateFieldEditable(event *models.Event, fieldName string, now time.Time) error {
	switch event.ComputedStatusAt(now) {
	case models.StatusScheduled:
		switch fieldName {
		case "name", "description", "location", "capacity", "status":
			return nil
		case "start_date", "end_date":
			if !now.Before(event.StartDate) {
				return helpers.NewValidationError(fmt.Sprintf(
					"Cannot modify %s because the event has already started.", fieldName))
			}
			return nil
		}
		return helpers.NewValidationError(fmt.Sprintf(
			"Field '%s' cannot be edited while the event is scheduled.", fieldName))

	case models.StatusOngoing:
		switch fieldName {
		case "description", "location":
			return nil
		}
		return helpers.NewValidationError(fmt.Sprintf(
			"Field '%s' cannot be edited while the event is in progress.", fieldName))

	case models.StatusCompleted:
		return helpers.NewValidationError(fmt.Sprintf(
			"Field '%s' cannot be edited because the event is completed.", fieldName))

	default: // cancelled
		if fieldName == "status" {
			return nil
		}
		return helpers.NewValidationError(fmt.Sprintf(
			"Field '%s' cannot be edited because the event is cancelled. Reactivate it first by setting the status back to scheduled.", fieldName))
	}
}

// MaxActiveSessionCapacity returns the largest capacity among the
// event's non-deleted sessions, or nil when no session declares one.
func MaxActiveSessionCapacity(sessions []models.Session) *int {
	var max *int
	for i := range sessions {
		session := &sessions[i]
		if session.IsDeleted || session.DeletedAt != nil || session.Capacity == nil {
			continue
		}
		if max == nil || *session.Capacity > *max {
			max = session.Capacity
		}
	}
	return max
}

// ValidateCapacityChange rejects a new capacity below the count of
// active registrations or below the largest active session capacity.
func ValidateCapacityChange(newCapacity int, activeRegistrations int, sessions []models.Session) error {
	if newCapacity <= 0 {
		return helpers.NewValidationError("Capacity must be greater than 0.")
	}
	if newCapacity < activeRegistrations {
		return helpers.NewValidationError(fmt.Sprintf(
			"Cannot set capacity to %d because %d users are registered. The minimum capacity is %d.",
			newCapacity, activeRegistrations, activeRegistrations))
	}
	if max := MaxActiveSessionCapacity(sessions); max != nil && newCapacity < *max {
		return helpers.NewValidationError(fmt.Sprintf(
			"Cannot set capacity to %d because a session has capacity %d. The minimum event capacity is %d.",
			newCapacity, *max, *max))
	}
	return nil
}

// ValidateEventUpdate runs every business rule for an update request.
// The status transition is checked first so that status-machine errors
// win over field-lock errors for the same request.
func ValidateEventUpdate(event *models.Event, update EventUpdate, activeRegistrations int, sessions []models.Session, now time.Time) error {
	if update.Status != nil {
		if err := ValidateStatusTransition(event, *update.Status, now); err != nil {
			return err
		}
	}

	fields := []struct {
		name string
		set  bool
	}{
		{"name", update.Name != nil},
		{"description", update.Description != nil},
		{"location", update.Location != nil},
		{"start_date", update.StartDate != nil},
		{"end_date", update.EndDate != nil},
		{"capacity", update.Capacity != nil},
	}
	for _, field := range fields {
		if !field.set {
			continue
		}
		if err := ValidateFieldEditable(event, field.name, now); err != nil {
			return err
		}
	}

	if update.Capacity != nil {
		if err := ValidateCapacityChange(*update.Capacity, activeRegistrations, sessions); err != nil {
			return err
		}
	}

	if update.StartDate != nil || update.EndDate != nil {
		start := event.StartDate
		end := event.EndDate
		if update.StartDate != nil {
			start = *update.StartDate
		}
		if update.EndDate != nil {
			end = *update.EndDate
		}
		if !end.After(start) {
			return helpers.NewValidationError("End date must be after start date.")
		}
	}

	return nil
}
