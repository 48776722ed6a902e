package controllers

import (
	"net/http"

	"github.com/Atlas00000/productvisualizer/services"

	"github.com/gin-gonic/gin"
)

// IdempotencyHeader lets clients retry a create without saving twice.
const IdempotencyHeader = "Idempotency-Key"

type CustomizationController struct {
	customizationService services.CustomizationService
}

func NewCustomizationController(customizationService services.CustomizationService) *CustomizationController {
	return &CustomizationController{customizationService: customizationService}
}

// CreateCustomization handles POST /api/customizations.
func (cc *CustomizationController) CreateCustomization(c *gin.Context) {
	var req services.CustomizationCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	customization, replayed, err := cc.customizationService.Create(c.Request.Context(), req, c.GetHeader(IdempotencyHeader))
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"success": true, "data": customization})
}

// GetCustomization handles GET /api/customizations/:id.
func (cc *CustomizationController) GetCustomization(c *gin.Context) {
	customization, err := cc.customizationService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": customization})
}

// ListCustomizations handles GET /api/customizations?userId=.
func (cc *CustomizationController) ListCustomizations(c *gin.Context) {
	list, err := cc.customizationService.ListByUser(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(list), "data": list})
}

// DeleteCustomization handles DELETE /api/customizations/:id.
func (cc *CustomizationController) DeleteCustomization(c *gin.Context) {
	if err := cc.customizationService.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Customization deleted successfully"})
}
