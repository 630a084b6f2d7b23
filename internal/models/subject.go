package models

type Subject struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"uniqueIndex"`
	Name        string
	Branch      string `gorm:"index"`
	Semester    int    `gorm:"index"`
	SubjectType string `gorm:"index"`
}
