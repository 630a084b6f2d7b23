package models

import (
	"time"
)

// Role values stored on User.Role.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex"`
	Email     string `gorm:"uniqueIndex"`
	Password  string
	Role      string `gorm:"index"`
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	Student *Student `gorm:"foreignKey:UserIDRef"`
	Teacher *Teacher `gorm:"foreignKey:UserIDRef"`
}
