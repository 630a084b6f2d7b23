package models

import (
	"time"
)

// AdminLog is an append-only audit line for admin actions. Written by the
// lifecycle transitions, never read back by the core.
type AdminLog struct {
	ID        uint `gorm:"primaryKey"`
	AdminID   uint `gorm:"index"`
	Action    string
	Timestamp time.Time `gorm:"index"`
}
