package storefront

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/Atlas00000/productvisualizer/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the customizer page, its fragments and the add-to-cart action.
type Handler struct {
	products services.ProductService
	cart     services.CartSink
	logger   *zap.Logger
	now      func() time.Time
}

func NewHandler(products services.ProductService, cart services.CartSink, logger *zap.Logger) *Handler {
	return &Handler{products: products, cart: cart, logger: logger, now: time.Now}
}

// Register mounts the customizer routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/customizer", h.Landing)
	r.GET("/customizer/:id", h.Page)
	r.GET("/customizer/:id/fragments", h.Fragments)
	r.POST("/customizer/:id/cart", h.AddToCart)
}

// Landing shows the first active product, or the built-in chair when the
// catalog cannot be read.
func (h *Handler) Landing(c *gin.Context) {
	st := Init(c.Request.Context(), h.firstActive, h.logger)
	h.renderPage(c, st)
}

func (h *Handler) firstActive(ctx context.Context) (Product, error) {
	products, err := h.products.ListActive(ctx)
	if err != nil {
		return Product{}, err
	}
	if len(products) == 0 {
		return Product{}, errors.New("no active products")
	}
	return FromModel(&products[0]), nil
}

// Page handles GET /customizer/:id?color=&material=.
func (h *Handler) Page(c *gin.Context) {
	st, err := h.state(c)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.renderPage(c, st)
}

// Fragments handles GET /customizer/:id/fragments?color=&material=.
func (h *Handler) Fragments(c *gin.Context) {
	st, err := h.state(c)
	if err != nil {
		respondJSONError(c, err)
		return
	}
	f, err := RenderFragments(st)
	if err != nil {
		h.logger.Error("Failed to render fragments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, f)
}

type cartForm struct {
	SelectedColor    string `form:"selectedColor" json:"selectedColor" binding:"required"`
	SelectedMaterial string `form:"selectedMaterial" json:"selectedMaterial" binding:"required"`
	UserID           string `form:"userId" json:"userId"`
}

// AddToCart handles POST /customizer/:id/cart.
func (h *Handler) AddToCart(c *gin.Context) {
	var form cartForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation Error", "errors": []string{err.Error()}})
		return
	}
	p, err := h.load(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondJSONError(c, err)
		return
	}
	// Unlike the page toggles, a cart write never falls back to another option.
	if _, err := services.QuoteSelection(p.model(), services.Selection{Color: form.SelectedColor, Material: form.SelectedMaterial}); err != nil {
		respondJSONError(c, err)
		return
	}

	st := Ready(NewState(p)).SelectColor(form.SelectedColor).SelectMaterial(form.SelectedMaterial)
	item := AddToCart(st)
	userID := form.UserID
	if userID == "" {
		userID = "anonymous"
	}
	if err := h.cart.Publish(c.Request.Context(), item.Event(userID, h.now().UTC())); err != nil {
		h.logger.Error("Failed to publish cart item", zap.String("product_id", item.ProductID), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product added to cart!", "data": item})
}

func (h *Handler) state(c *gin.Context) (State, error) {
	p, err := h.load(c.Request.Context(), c.Param("id"))
	if err != nil {
		return State{}, err
	}
	st := Ready(NewState(p))
	if color := c.Query("color"); color != "" {
		st = st.SelectColor(color)
	}
	if material := c.Query("material"); material != "" {
		st = st.SelectMaterial(material)
	}
	ViewerUpdate(h.logger, st)
	return st, nil
}

func (h *Handler) load(ctx context.Context, id string) (Product, error) {
	if def := DefaultProduct(); id == def.ID {
		return def, nil
	}
	product, err := h.products.GetByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if !product.IsActive {
		return Product{}, &services.ServiceError{Kind: services.KindNotFound, StatusCode: http.StatusNotFound, Message: "Product not found"}
	}
	return FromModel(product), nil
}

type pageData struct {
	State      State
	Swatches   template.HTML
	Materials  template.HTML
	Summary    template.HTML
	CartAction string
}

func (h *Handler) renderPage(c *gin.Context, st State) {
	f, err := RenderFragments(st)
	if err != nil {
		h.logger.Error("Failed to render customizer", zap.Error(err))
		h.renderError(c, err)
		return
	}
	var buf bytes.Buffer
	err = pageTmpl.Execute(&buf, pageData{
		State:      st,
		Swatches:   f.Swatches,
		Materials:  f.Materials,
		Summary:    f.Summary,
		CartAction: fmt.Sprintf("/customizer/%s/cart", st.Product.ID),
	})
	if err != nil {
		h.logger.Error("Failed to render customizer", zap.Error(err))
		h.renderError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) renderError(c *gin.Context, err error) {
	status, msg, note := describe(err)
	var buf bytes.Buffer
	if terr := errorTmpl.Execute(&buf, gin.H{"Message": msg, "Note": note}); terr != nil {
		c.String(status, msg)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func respondJSONError(c *gin.Context, err error) {
	status, msg, _ := describe(err)
	body := gin.H{"success": false, "message": msg}
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) && len(svcErr.Details) > 0 {
		body["errors"] = svcErr.Details
	}
	c.JSON(status, body)
}

func describe(err error) (status int, message, note string) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.StatusCode, svcErr.Message, svcErr.Note
	}
	return http.StatusInternalServerError, "Server error", ""
}
