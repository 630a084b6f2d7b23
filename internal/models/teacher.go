package models

import (
	"time"
)

type Teacher struct {
	ID               uint `gorm:"primaryKey"`
	UserIDRef        uint `gorm:"uniqueIndex"`
	Name             string
	EmployeeID       string `gorm:"uniqueIndex"`
	Branch           string `gorm:"index"`
	Qualification    string
	StaffCategory    string
	Role             string
	RegistrationDate time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
