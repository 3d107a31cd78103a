package models

import (
	"time"

	"gorm.io/gorm"
)

// SoftDeletable is implemented by every entity that is removed by
// flagging rather than by physical deletion.
type SoftDeletable interface {
	MarkDeleted(now time.Time)
}

// NotDeleted scopes a query to rows that have not been soft-deleted.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL AND is_deleted = ?", false)
}
