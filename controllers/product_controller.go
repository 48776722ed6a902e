package controllers

import (
	"net/http"

	"github.com/Atlas00000/productvisualizer/services"

	"github.com/gin-gonic/gin"
)

// ProductController handles HTTP requests for the product catalog.
type ProductController struct {
	productService services.ProductService
}

func NewProductController(productService services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// GetProducts handles GET /api/products.
func (pc *ProductController) GetProducts(c *gin.Context) {
	products, err := pc.productService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(products), "data": products})
}

// GetProduct handles GET /api/products/:id. Inactive products are still returned.
func (pc *ProductController) GetProduct(c *gin.Context) {
	product, err := pc.productService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// CreateProduct handles POST /api/products.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var in services.ProductInput
	if !bindJSON(c, &in) {
		return
	}
	product, err := pc.productService.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
}

// UpdateProduct handles PUT /api/products/:id.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var in services.ProductInput
	if !bindJSON(c, &in) {
		return
	}
	product, err := pc.productService.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// DeleteProduct handles DELETE /api/products/:id as a soft delete.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if err := pc.productService.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
}
