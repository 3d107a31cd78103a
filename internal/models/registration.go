package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registration links a user to an event. There is no database
// uniqueness constraint on (user_id, event_id): a soft-deleted row
// must not block re-registration, so the one-active-row invariant is
// enforced in the attendee service instead.
type Registration struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User      `gorm:"foreignKey:UserID" json:"-"`
	EventID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"event_id"`
	Event        *Event     `gorm:"foreignKey:EventID" json:"-"`
	RegisteredAt time.Time  `gorm:"not null" json:"registered_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `gorm:"index" json:"-"`
	IsDeleted    bool       `gorm:"not null;default:false" json:"-"`
}

func (registration *Registration) BeforeCreate(tx *gorm.DB) (err error) {
	if registration.ID == uuid.Nil {
		registration.ID = uuid.New()
	}
	if registration.RegisteredAt.IsZero() {
		registration.RegisteredAt = time.Now().UTC()
	}
	return
}

func (registration *Registration) MarkDeleted(now time.Time) {
	registration.DeletedAt = &now
	registration.IsDeleted = true
	registration.UpdatedAt = now
}
