package database

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zaqqye/campus_attendance/internal/config"
	"github.com/zaqqye/campus_attendance/internal/models"
	"github.com/zaqqye/campus_attendance/internal/utils"
)

// SeedAdmin creates the initial admin account when none exists.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		UserID:   uuid.NewString(),
		Email:    cfg.AdminEmail,
		Password: hashed,
		Role:     models.RoleAdmin,
		Active:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Seeded initial admin:", cfg.AdminEmail)
	return nil
}
