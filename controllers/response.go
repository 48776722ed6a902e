package controllers

import (
	"errors"
	"net/http"

	"github.com/Atlas00000/productvisualizer/services"

	"github.com/gin-gonic/gin"
)

// respondError writes the JSON error body for err. Degraded-store errors
// carry a setup note the storefront shows to operators.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var svcErr *services.ServiceError
	if !errors.As(err, &svcErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error", "error": err.Error()})
		return
	}

	body := gin.H{"success": false, "message": svcErr.Message}
	if len(svcErr.Details) > 0 {
		body["errors"] = svcErr.Details
	}
	if svcErr.Kind == services.KindUnhandled && svcErr.Err != nil {
		body["error"] = svcErr.Err.Error()
	}
	if svcErr.Note != "" {
		body["note"] = svcErr.Note
		body["setupRequired"] = true
	}
	c.JSON(svcErr.StatusCode, body)
}

// bindJSON decodes the request body, answering 400 itself on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation Error",
			"errors":  []string{"invalid request body: " + err.Error()},
		})
		return false
	}
	return true
}
