package models

import (
	"time"

	"gorm.io/datatypes"
)

// CheckinDraft holds an operator's unfinished check-in form between requests.
type CheckinDraft struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`
	OperatorID uint           `gorm:"uniqueIndex;column:operator_id" json:"operator_id"`
	RoomID     *uint          `gorm:"column:room_id" json:"room_id,omitempty"`
	Payload    datatypes.JSON `gorm:"column:payload" json:"payload"`
	ExpiresAt  time.Time      `gorm:"column:expires_at;index" json:"expires_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
