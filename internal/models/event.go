package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmorales/eventhub/internal/helpers"
)

// EventStatus covers both the stored manual statuses (scheduled,
// cancelled) and the two date-derived ones (ongoing, completed) that
// only ever appear as computed values, never in the status column.
type EventStatus string

const (
	StatusScheduled EventStatus = "scheduled"
	StatusOngoing   EventStatus = "ongoing"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) Storable() bool {
	return s == StatusScheduled || s == StatusCancelled
}

type Event struct {
	ID             uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	Name           string      `gorm:"not null;index" json:"name"`
	NameNormalized string      `gorm:"not null;index" json:"-"`
	Description    string      `json:"description"`
	Location       string      `json:"location"`
	StartDate      time.Time   `gorm:"not null" json:"start_date"`
	EndDate        time.Time   `gorm:"not null" json:"end_date"`
	Capacity       int         `gorm:"not null" json:"capacity"`
	Status         EventStatus `gorm:"not null;default:'scheduled'" json:"status"`
	// RegisteredCount backs the atomic capacity claim on registration.
	// It counts non-deleted registrations.
	RegisteredCount int            `gorm:"not null;default:0" json:"registered_count"`
	CreatorID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator         *User          `gorm:"foreignKey:CreatorID" json:"-"`
	Sessions        []Session      `json:"sessions,omitempty"`
	Registrations   []Registration `json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       *time.Time     `gorm:"index" json:"-"`
	IsDeleted       bool           `gorm:"not null;default:false" json:"-"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}

// BeforeSave keeps the searchable shadow of Name in sync so that the
// stored field and the query term go through the same normalization.
func (event *Event) BeforeSave(tx *gorm.DB) (err error) {
	event.NameNormalized = helpers.NormalizeText(event.Name)
	return
}

func (event *Event) MarkDeleted(now time.Time) {
	event.DeletedAt = &now
	event.IsDeleted = true
	event.UpdatedAt = now
}

// ComputedStatusAt derives the display status of the event at the
// given instant. A manual cancellation always wins; a scheduled event
// is completed strictly after its end date and ongoing between its
// bounds inclusive.
func (event *Event) ComputedStatusAt(now time.Time) EventStatus {
	if event.Status == StatusCancelled {
		return StatusCancelled
	}
	if now.After(event.EndDate) {
		return StatusCompleted
	}
	if !now.Before(event.StartDate) {
		return StatusOngoing
	}
	return StatusScheduled
}

func (event *Event) AvailableCapacity() int {
	available := event.Capacity - event.RegisteredCount
	if available < 0 {
		return 0
	}
	return available
}

func (event *Event) IsFull() bool {
	return event.AvailableCapacity() == 0
}
