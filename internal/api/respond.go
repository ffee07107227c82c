package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"ClubManager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps service errors onto HTTP statuses: validation failures
// carry the full violation list as a 400, missing rows are 404, everything
// else is a 500.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "validation failed",
			"violations": ve.Violations,
		})
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	logger.WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// parseID reads a numeric path parameter.
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be numeric"})
		return 0, false
	}
	return id, true
}

// parseDate parses a yyyy-mm-dd value.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
