package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmorales/eventhub/internal/helpers"
	"github.com/rmorales/eventhub/internal/models"
)

type SessionCreateInput struct {
	EventID     uuid.UUID
	Title       string
	Description string
	SpeakerName string
	SpeakerBio  string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
	Capacity    *int
}

type SessionUpdateInput struct {
	Title       *string
	Description *string
	SpeakerName *string
	SpeakerBio  *string
	StartTime   *time.Time
	EndTime     *time.Time
	Location    *string
	Capacity    *int
}

func validateSessionWindow(start, end time.Time, event *models.Event) error {
	if !end.After(start) {
		return helpers.NewValidationError("Session end time must be after start time.")
	}
	if start.Before(event.StartDate) || end.After(event.EndDate) {
		return helpers.NewValidationError("Session must be within the event's date range.")
	}
	return nil
}

func validateSessionCapacity(capacity *int, event *models.Event) error {
	if capacity == nil {
		return nil
	}
	if *capacity <= 0 {
		return helpers.NewValidationError("Session capacity must be greater than 0.")
	}
	if *capacity > event.Capacity {
		return helpers.NewValidationError(fmt.Sprintf(
			"Session capacity (%d) cannot exceed the event capacity (%d).", *capacity, event.Capacity))
	}
	return nil
}

func GetSession(db *gorm.DB, sessionID uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := models.NotDeleted(db).Where("id = ?", sessionID).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, helpers.NewNotFoundError("Session not found.")
		}
		return nil, err
	}
	return &session, nil
}

// GetEventSessions pages through the active sessions of an event.
func GetEventSessions(db *gorm.DB, eventID uuid.UUID, page, perPage int) ([]models.Session, *helpers.Pagination, error) {
	if err := helpers.ValidatePageParams(page, perPage); err != nil {
		return nil, nil, err
	}
	if _, err := GetEvent(db, eventID, false); err != nil {
		return nil, nil, err
	}

	query := models.NotDeleted(db.Model(&models.Session{})).
		Where("event_id = ?", eventID).
		Order("start_time ASC")

	var sessions []models.Session
	pagination, err := helpers.Paginate(query, page, perPage, &sessions)
	if err != nil {
		return nil, nil, err
	}
	return sessions, pagination, nil
}

func CreateSession(db *gorm.DB, input SessionCreateInput) (*models.Session, error) {
	event, err := GetEvent(db, input.EventID, false)
	if err != nil {
		return nil, err
	}
	if err := validateSessionWindow(input.StartTime, input.EndTime, event); err != nil {
		return nil, err
	}
	if err := validateSessionCapacity(input.Capacity, event); err != nil {
		return nil, err
	}

	session := models.Session{
		EventID:     input.EventID,
		Title:       input.Title,
		Description: input.Description,
		SpeakerName: input.SpeakerName,
		SpeakerBio:  input.SpeakerBio,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Location:    input.Location,
		Capacity:    input.Capacity,
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func UpdateSession(db *gorm.DB, sessionID uuid.UUID, update SessionUpdateInput) (*models.Session, error) {
	session, err := GetSession(db, sessionID)
	if err != nil {
		return nil, err
	}
	event, err := GetEvent(db, session.EventID, false)
	if err != nil {
		return nil, err
	}

	if update.StartTime != nil || update.EndTime != nil {
		start := session.StartTime
		end := session.EndTime
		if update.StartTime != nil {
			start = *update.StartTime
		}
		if update.EndTime != nil {
			end = *update.EndTime
		}
		if err := validateSessionWindow(start, end, event); err != nil {
			return nil, err
		}
	}
	if update.Capacity != nil {
		if err := validateSessionCapacity(update.Capacity, event); err != nil {
			return nil, err
		}
	}

	if update.Title != nil {
		session.Title = *update.Title
	}
	if update.Description != nil {
		session.Description = *update.Description
	}
	if update.SpeakerName != nil {
		session.SpeakerName = *update.SpeakerName
	}
	if update.SpeakerBio != nil {
		session.SpeakerBio = *update.SpeakerBio
	}
	if update.StartTime != nil {
		session.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		session.EndTime = *update.EndTime
	}
	if update.Location != nil {
		session.Location = *update.Location
	}
	if update.Capacity != nil {
		session.Capacity = update.Capacity
	}
	session.UpdatedAt = time.Now().UTC()

	if err := db.Omit("Event").Save(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func DeleteSession(db *gorm.DB, sessionID uuid.UUID) error {
	session, err := GetSession(db, sessionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	session.MarkDeleted(now)
	return db.Model(session).Updates(map[string]interface{}{
		"deleted_at": now,
		"is_deleted": true,
		"updated_at": now,
	}).Error
}
