package controllers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/zaqqye/campus_attendance/internal/models"
)

// CatalogController serves the static registration catalogs.
type CatalogController struct{}

func (CatalogController) Branches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"branches":         models.Branches,
		"teacher_branches": models.TeacherBranches,
		"sections":         models.Sections,
	})
}

func (CatalogController) TeacherRoles(c *gin.Context) {
	category := c.Param("category")
	roles, ok := models.TeacherRoles[category]
	if !ok {
		c.JSON(http.StatusOK, []string{})
		return
	}
	c.JSON(http.StatusOK, roles)
}

func (CatalogController) StaffCategories(c *gin.Context) {
	categories := make([]string, 0, len(models.TeacherRoles))
	for k := range models.TeacherRoles {
		categories = append(categories, k)
	}
	sort.Strings(categories)
	c.JSON(http.StatusOK, categories)
}
