package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmorales/eventhub/internal/helpers"
	"github.com/rmorales/eventhub/internal/models"
)

type AttendeeInfo struct {
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	RegisteredAt time.Time `json:"registered_at"`
}

type EventAttendees struct {
	EventID        uuid.UUID      `json:"event_id"`
	TotalAttendees int            `json:"total_attendees"`
	Capacity       int            `json:"capacity"`
	Available      int            `json:"available"`
	Attendees      []AttendeeInfo `json:"attendees"`
}

// RegisterToEvent registers a user to an event. Capacity is claimed
// with a conditional update on the event's registered count inside the
// same transaction as the insert, so two concurrent registrations
// cannot both take the last seat: the losing request sees zero rows
// affected and fails the same way as a request against a full event.
// The duplicate check runs again after the claim, which orders racing
// transactions on the event row, so two concurrent registrations by
// the same user cannot both insert.
func RegisterToEvent(db *gorm.DB, eventID uuid.UUID, user *models.User) (*models.Registration, error) {
	var registration *models.Registration
	err := db.Transaction(func(tx *gorm.DB) error {
		event, err := GetEvent(tx, eventID, false)
		if err != nil {
			return err
		}
		if event.IsFull() {
			return helpers.NewValidationError("The event is full.")
		}

		registered, err := IsUserRegistered(tx, eventID, user.ID)
		if err != nil {
			return err
		}
		if registered {
			return helpers.NewConflictError("You are already registered to this event.")
		}

		now := time.Now().UTC()
		claim := tx.Model(&models.Event{}).
			Where("id = ? AND registered_count < capacity AND deleted_at IS NULL AND is_deleted = ?", eventID, false).
			Updates(map[string]interface{}{
				"registered_count": gorm.Expr("registered_count + 1"),
				"updated_at":       now,
			})
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return helpers.NewValidationError("The event is full.")
		}

		// Holding the event row lock, a fresh check sees any
		// registration a racing transaction committed first.
		registered, err = IsUserRegistered(tx, eventID, user.ID)
		if err != nil {
			return err
		}
		if registered {
			return helpers.NewConflictError("You are already registered to this event.")
		}

		registration = &models.Registration{
			UserID:       user.ID,
			EventID:      eventID,
			RegisteredAt: now,
		}
		return tx.Create(registration).Error
	})
	if err != nil {
		return nil, err
	}
	return registration, nil
}

// UnregisterFromEvent soft-deletes the user's active registration and
// releases the claimed seat.
func UnregisterFromEvent(db *gorm.DB, eventID uuid.UUID, user *models.User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var registration models.Registration
		err := models.NotDeleted(tx).
			Where("user_id = ? AND event_id = ?", user.ID, eventID).
			First(&registration).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return helpers.NewNotFoundError("You are not registered to this event.")
			}
			return err
		}

		// The is_deleted guard makes the soft delete claim the row:
		// a concurrent unregister of the same registration affects
		// zero rows and must not release a seat.
		now := time.Now().UTC()
		release := tx.Model(&models.Registration{}).
			Where("id = ? AND is_deleted = ?", registration.ID, false).
			Updates(map[string]interface{}{
				"deleted_at": now,
				"is_deleted": true,
				"updated_at": now,
			})
		if release.Error != nil {
			return release.Error
		}
		if release.RowsAffected == 0 {
			return helpers.NewNotFoundError("You are not registered to this event.")
		}

		return tx.Model(&models.Event{}).
			Where("id = ? AND registered_count > 0", eventID).
			Updates(map[string]interface{}{
				"registered_count": gorm.Expr("registered_count - 1"),
				"updated_at":       now,
			}).Error
	})
}

// GetUserRegisteredEvents pages through the events a user is
// registered to, excluding anything soft-deleted on either side.
func GetUserRegisteredEvents(db *gorm.DB, user *models.User, page, perPage int) ([]models.Event, *helpers.Pagination, error) {
	if err := helpers.ValidatePageParams(page, perPage); err != nil {
		return nil, nil, err
	}

	query := db.Model(&models.Event{}).
		Joins("JOIN registrations ON registrations.event_id = events.id").
		Where("registrations.user_id = ? AND registrations.deleted_at IS NULL AND registrations.is_deleted = ?", user.ID, false).
		Where("events.deleted_at IS NULL AND events.is_deleted = ?", false).
		Order("events.created_at DESC")

	var events []models.Event
	pagination, err := helpers.Paginate(query, page, perPage, &events)
	if err != nil {
		return nil, nil, err
	}
	return events, pagination, nil
}

// GetUserRegisteredEventsAll returns every event the user is
// registered to, for the profile view.
func GetUserRegisteredEventsAll(db *gorm.DB, userID uuid.UUID) ([]models.Event, error) {
	var events []models.Event
	err := db.Model(&models.Event{}).
		Joins("JOIN registrations ON registrations.event_id = events.id").
		Where("registrations.user_id = ? AND registrations.deleted_at IS NULL AND registrations.is_deleted = ?", userID, false).
		Where("events.deleted_at IS NULL AND events.is_deleted = ?", false).
		Order("events.created_at DESC").
		Find(&events).Error
	return events, err
}

// GetEventAttendees lists the active registrations of an event with
// the registered users preloaded.
func GetEventAttendees(db *gorm.DB, eventID uuid.UUID) (*EventAttendees, error) {
	event, err := GetEvent(db, eventID, false)
	if err != nil {
		return nil, err
	}

	var registrations []models.Registration
	err = models.NotDeleted(db).
		Where("event_id = ?", eventID).
		Preload("User").
		Order("registered_at ASC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}

	attendees := make([]AttendeeInfo, 0, len(registrations))
	for i := range registrations {
		registration := &registrations[i]
		info := AttendeeInfo{
			UserID:       registration.UserID,
			RegisteredAt: registration.RegisteredAt,
		}
		if registration.User != nil {
			info.Email = registration.User.Email
			info.FullName = registration.User.FullName
		}
		attendees = append(attendees, info)
	}

	return &EventAttendees{
		EventID:        eventID,
		TotalAttendees: len(attendees),
		Capacity:       event.Capacity,
		Available:      event.AvailableCapacity(),
		Attendees:      attendees,
	}, nil
}

// IsUserRegistered reports whether the user has an active registration
// for the event.
func IsUserRegistered(db *gorm.DB, eventID, userID uuid.UUID) (bool, error) {
	var count int64
	err := models.NotDeleted(db.Model(&models.Registration{})).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count > 0, err
}

// GetActiveRegistration loads the user's active registration for an
// event, for the check-in ticket flow.
func GetActiveRegistration(db *gorm.DB, eventID, userID uuid.UUID) (*models.Registration, error) {
	var registration models.Registration
	err := models.NotDeleted(db).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&registration).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, helpers.NewNotFoundError("You are not registered to this event.")
		}
		return nil, err
	}
	return &registration, nil
}
