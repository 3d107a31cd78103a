package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Session struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	EventID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"event_id"`
	Event       *Event     `gorm:"foreignKey:EventID" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	SpeakerName string     `json:"speaker_name"`
	SpeakerBio  string     `json:"speaker_bio"`
	StartTime   time.Time  `gorm:"not null" json:"start_time"`
	EndTime     time.Time  `gorm:"not null" json:"end_time"`
	Location    string     `json:"location"`
	Capacity    *int       `json:"capacity"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `gorm:"index" json:"-"`
	IsDeleted   bool       `gorm:"not null;default:false" json:"-"`
}

func (session *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	return
}

func (session *Session) MarkDeleted(now time.Time) {
	session.DeletedAt = &now
	session.IsDeleted = true
	session.UpdatedAt = now
}
