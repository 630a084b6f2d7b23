package models

import (
	"time"
)

type Student struct {
	ID                uint `gorm:"primaryKey"`
	UserIDRef         uint `gorm:"uniqueIndex"`
	Name              string
	RegisterNumber    string `gorm:"uniqueIndex"`
	Branch            string `gorm:"index"`
	CurrentSemester   int    `gorm:"index"`
	Section           string `gorm:"index"`
	Phone             string
	SemesterStartDate time.Time
	IsSemesterActive  bool `gorm:"index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
