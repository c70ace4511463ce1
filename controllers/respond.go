package controllers

import (
	"net/http"

	"github.com/cride-hq/cride_backend/database"
	"github.com/cride-hq/cride_backend/models"
	"github.com/cride-hq/cride_backend/services"
	"github.com/gin-gonic/gin"
)

// respondError maps a domain error kind to its HTTP status. Non-domain
// errors are reported as 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	kind, ok := services.KindOf(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch kind {
	case services.KindValidation:
		status = http.StatusBadRequest
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindConflict, services.KindCapacityExceeded:
		status = http.StatusConflict
	case services.KindPermissionDenied:
		status = http.StatusForbidden
	case services.KindStateViolation:
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

// findCircle resolves the :slug path parameter. Handlers nested under
// /circles/:slug all go through this.
func findCircle(c *gin.Context) (*models.Circle, bool) {
	var circle models.Circle
	if err := database.DB.Where("slug_name = ?", c.Param("slug")).First(&circle).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Circle not found"})
		return nil, false
	}
	return &circle, true
}
