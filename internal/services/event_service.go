package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmorales/eventhub/internal/helpers"
	"github.com/rmorales/eventhub/internal/models"
	"github.com/rmorales/eventhub/internal/validation"
)

type EventCreateInput struct {
	Name        string
	Description string
	Location    string
	StartDate   time.Time
	EndDate     time.Time
	Capacity    int
}

type EventListParams struct {
	Page    int
	PerPage int
	Search  string
	Status  models.EventStatus
}

// GetEvent loads a non-deleted event, optionally with its active
// sessions.
func GetEvent(db *gorm.DB, eventID uuid.UUID, includeSessions bool) (*models.Event, error) {
	query := models.NotDeleted(db).Where("id = ?", eventID)
	if includeSessions {
		query = query.Preload("Sessions", "deleted_at IS NULL AND is_deleted = ?", false)
	}

	var event models.Event
	if err := query.First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, helpers.NewNotFoundError("Event not found.")
		}
		return nil, err
	}
	return &event, nil
}

// scopeComputedStatus translates ComputedStatusAt into a set predicate
// with the same boundary semantics: completed is strictly after the
// end date, ongoing includes both bounds.
func scopeComputedStatus(query *gorm.DB, status models.EventStatus, now time.Time) *gorm.DB {
	switch status {
	case models.StatusCancelled:
		return query.Where("status = ?", models.StatusCancelled)
	case models.StatusScheduled:
		return query.Where("status = ? AND ? < start_date", models.StatusScheduled, now)
	case models.StatusOngoing:
		return query.Where("status = ? AND start_date <= ? AND ? <= end_date", models.StatusScheduled, now, now)
	case models.StatusCompleted:
		return query.Where("status = ? AND end_date < ?", models.StatusScheduled, now)
	}
	return query
}

// ListEvents lists non-deleted events with optional name search
// (case- and accent-insensitive) and computed-status filter.
func ListEvents(db *gorm.DB, params EventListParams) ([]models.Event, *helpers.Pagination, error) {
	if err := helpers.ValidatePageParams(params.Page, params.PerPage); err != nil {
		return nil, nil, err
	}

	query := models.NotDeleted(db.Model(&models.Event{}))
	if params.Search != "" {
		query = query.Where("name_normalized LIKE ?", "%"+helpers.NormalizeText(params.Search)+"%")
	}
	if params.Status != "" {
		query = scopeComputedStatus(query, params.Status, time.Now().UTC())
	}
	query = query.Order("created_at DESC")

	var events []models.Event
	pagination, err := helpers.Paginate(query, params.Page, params.PerPage, &events)
	if err != nil {
		return nil, nil, err
	}
	return events, pagination, nil
}

func CreateEvent(db *gorm.DB, input EventCreateInput, creator *models.User) (*models.Event, error) {
	if input.Capacity <= 0 {
		return nil, helpers.NewValidationError("Capacity must be greater than 0.")
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, helpers.NewValidationError("End date must be after start date.")
	}

	event := models.Event{
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Capacity:    input.Capacity,
		Status:      models.StatusScheduled,
		CreatorID:   creator.ID,
	}
	if err := db.Create(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent applies a partial update after running the status
// transition and field-editability rules against the current state.
func UpdateEvent(db *gorm.DB, eventID uuid.UUID, update validation.EventUpdate) (*models.Event, error) {
	var updated *models.Event
	err := db.Transaction(func(tx *gorm.DB) error {
		event, err := GetEvent(tx, eventID, true)
		if err != nil {
			return err
		}

		activeRegistrations, err := countActiveRegistrations(tx, eventID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := validation.ValidateEventUpdate(event, update, activeRegistrations, event.Sessions, now); err != nil {
			return err
		}

		if update.Name != nil {
			event.Name = *update.Name
		}
		if update.Description != nil {
			event.Description = *update.Description
		}
		if update.Location != nil {
			event.Location = *update.Location
		}
		if update.StartDate != nil {
			event.StartDate = *update.StartDate
		}
		if update.EndDate != nil {
			event.EndDate = *update.EndDate
		}
		if update.Capacity != nil {
			event.Capacity = *update.Capacity
		}
		if update.Status != nil {
			event.Status = *update.Status
		}
		event.UpdatedAt = now

		// RegisteredCount is owned by the registration claim; writing
		// back the value read at transaction start would undo a
		// registration committed in between.
		if err := tx.Omit("Sessions", "Registrations", "Creator", "RegisteredCount", "CreatedAt").Save(event).Error; err != nil {
			return err
		}
		updated = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteEvent soft-deletes the event together with its active sessions
// and registrations, all stamped with the same timestamp. The cascade
// is all-or-nothing.
func DeleteEvent(db *gorm.DB, eventID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetEvent(tx, eventID, false); err != nil {
			return err
		}

		now := time.Now().UTC()
		softDelete := map[string]interface{}{
			"deleted_at": now,
			"is_deleted": true,
			"updated_at": now,
		}

		if err := models.NotDeleted(tx.Model(&models.Session{})).
			Where("event_id = ?", eventID).
			Updates(softDelete).Error; err != nil {
			return err
		}
		if err := models.NotDeleted(tx.Model(&models.Registration{})).
			Where("event_id = ?", eventID).
			Updates(softDelete).Error; err != nil {
			return err
		}
		return tx.Model(&models.Event{}).
			Where("id = ?", eventID).
			Updates(softDelete).Error
	})
}

// GetUserEvents pages through the events created by a user.
func GetUserEvents(db *gorm.DB, user *models.User, page, perPage int) ([]models.Event, *helpers.Pagination, error) {
	if err := helpers.ValidatePageParams(page, perPage); err != nil {
		return nil, nil, err
	}

	query := models.NotDeleted(db.Model(&models.Event{})).
		Where("creator_id = ?", user.ID).
		Order("created_at DESC")

	var events []models.Event
	pagination, err := helpers.Paginate(query, page, perPage, &events)
	if err != nil {
		return nil, nil, err
	}
	return events, pagination, nil
}

// GetUserEventsAll returns every event created by a user, for the
// profile view.
func GetUserEventsAll(db *gorm.DB, userID uuid.UUID) ([]models.Event, error) {
	var events []models.Event
	err := models.NotDeleted(db).
		Where("creator_id = ?", userID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func countActiveRegistrations(db *gorm.DB, eventID uuid.UUID) (int, error) {
	var count int64
	err := models.NotDeleted(db.Model(&models.Registration{})).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return int(count), err
}
