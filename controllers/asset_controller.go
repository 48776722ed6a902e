package controllers

import (
	"net/http"

	"github.com/Atlas00000/productvisualizer/services"

	"github.com/gin-gonic/gin"
)

// AssetController issues presigned upload URLs for product models and textures.
type AssetController struct {
	assetService services.AssetService
}

func NewAssetController(assetService services.AssetService) *AssetController {
	return &AssetController{assetService: assetService}
}

// PresignUpload handles POST /api/products/:id/assets/presign.
func (ac *AssetController) PresignUpload(c *gin.Context) {
	var req services.PresignRequest
	if !bindJSON(c, &req) {
		return
	}
	upload, err := ac.assetService.PresignUpload(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}
