package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaqqye/campus_attendance/internal/apperrors"
)

// respondError maps a service error onto the taxonomy's HTTP status.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = apperrors.ErrNotFound
	}
	c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
}
