package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Atlas00000/productvisualizer/models"
	"github.com/Atlas00000/productvisualizer/repository"
	"github.com/Atlas00000/productvisualizer/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubProducts struct {
	services.ProductService
	product *models.Product
	err     error
}

func (s stubProducts) GetByID(_ context.Context, id string) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, services.ErrMalformedID
	}
	return s.product, nil
}

func (s stubProducts) ListActive(context.Context) ([]models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.Product{*s.product}, nil
}

type sinkFunc func(ctx context.Context, e models.CartEvent) error

func (f sinkFunc) Publish(ctx context.Context, e models.CartEvent) error { return f(ctx, e) }

func lamp() *models.Product {
	return &models.Product{
		ID:        primitive.NewObjectID(),
		Name:      "Office Lamp",
		BasePrice: 149,
		IsActive:  true,
		CustomizationOptions: models.CustomizationOptions{
			Colors:    []models.ColorOption{{Name: "Black", Hex: "#000000"}, {Name: "Gold", Hex: "#ffd700", Price: 35}},
			Materials: []models.MaterialOption{{Name: "Metal"}, {Name: "Plastic", Price: -10}},
		},
	}
}

func newTestRouter(products services.ProductService, sink services.CartSink) *gin.Engine {
	r := gin.New()
	NewHandler(products, sink, zap.NewNop()).Register(r)
	return r
}

func TestPage_RendersSelection(t *testing.T) {
	p := lamp()
	r := newTestRouter(stubProducts{product: p}, services.LogSink{Logger: zap.NewNop()})

	req := httptest.NewRequest(http.MethodGet, "/customizer/"+p.ID.Hex()+"?color=Gold&material=Plastic", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `<div id="total-price">$174</div>`)
	assert.Contains(t, body, `data-color="Gold"`)
	assert.Contains(t, body, `action="/customizer/`+p.ID.Hex()+`/cart"`)
}

func TestPage_DefaultProduct(t *testing.T) {
	r := newTestRouter(stubProducts{err: services.ErrStoreUnavailable}, services.LogSink{Logger: zap.NewNop()})

	req := httptest.NewRequest(http.MethodGet, "/customizer/chair-001?color=Brown&material=Leather", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<div id="total-price">$374</div>`)
}

func TestPage_Errors(t *testing.T) {
	r := newTestRouter(stubProducts{product: lamp()}, services.LogSink{Logger: zap.NewNop()})

	req := httptest.NewRequest(http.MethodGet, "/customizer/bad-id", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid ID format")

	svc := services.NewProductService(repository.Unavailable{}, zap.NewNop())
	r = newTestRouter(svc, services.LogSink{Logger: zap.NewNop()})
	req = httptest.NewRequest(http.MethodGet, "/customizer/64b7f0c2a1b2c3d4e5f60718", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Database not connected")
}

func TestLanding_FallsBackToDefault(t *testing.T) {
	r := newTestRouter(stubProducts{err: services.ErrStoreUnavailable}, services.LogSink{Logger: zap.NewNop()})

	req := httptest.NewRequest(http.MethodGet, "/customizer", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Modern Chair")
}

func TestFragments(t *testing.T) {
	p := lamp()
	r := newTestRouter(stubProducts{product: p}, services.LogSink{Logger: zap.NewNop()})

	req := httptest.NewRequest(http.MethodGet, "/customizer/"+p.ID.Hex()+"/fragments?color=Gold", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var f struct {
		Swatches   string  `json:"swatches"`
		Materials  string  `json:"materials"`
		Summary    string  `json:"summary"`
		TotalPrice float64 `json:"totalPrice"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &f))
	assert.Equal(t, 184.0, f.TotalPrice)
	assert.Contains(t, f.Swatches, `class="color-swatch selected"`)
	assert.Contains(t, f.Summary, "Office Lamp")
}

func TestAddToCart_PublishesEvent(t *testing.T) {
	p := lamp()
	var events []models.CartEvent
	sink := sinkFunc(func(_ context.Context, e models.CartEvent) error {
		events = append(events, e)
		return nil
	})
	r := newTestRouter(stubProducts{product: p}, sink)

	form := url.Values{"selectedColor": {"Gold"}, "selectedMaterial": {"Metal"}, "userId": {"u1"}}
	req := httptest.NewRequest(http.MethodPost, "/customizer/"+p.ID.Hex()+"/cart", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, events, 1)
	assert.Equal(t, models.CartEventItemAdded, events[0].EventType)
	assert.Equal(t, p.ID.Hex(), events[0].ProductID)
	assert.Equal(t, "Gold", events[0].SelectedColor)
	assert.Equal(t, 184.0, events[0].TotalPrice)
	assert.Equal(t, "u1", events[0].UserID)
}

func postCart(r *gin.Engine, id string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/customizer/"+id+"/cart", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddToCart_RejectsUnknownOptions(t *testing.T) {
	p := lamp()
	var events []models.CartEvent
	sink := sinkFunc(func(_ context.Context, e models.CartEvent) error {
		events = append(events, e)
		return nil
	})
	r := newTestRouter(stubProducts{product: p}, sink)

	w := postCart(r, p.ID.Hex(), url.Values{"selectedColor": {"Purple"}, "selectedMaterial": {"Velvet"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Success bool     `json:"success"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Errors, `color "Purple" is not offered for this product`)
	assert.Contains(t, body.Errors, `material "Velvet" is not offered for this product`)
	assert.Empty(t, events)
}

func TestAddToCart_RequiresSelection(t *testing.T) {
	p := lamp()
	r := newTestRouter(stubProducts{product: p}, services.LogSink{Logger: zap.NewNop()})

	w := postCart(r, p.ID.Hex(), url.Values{"selectedColor": {"Gold"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInactiveProductIsNotFound(t *testing.T) {
	p := lamp()
	p.IsActive = false
	var events []models.CartEvent
	sink := sinkFunc(func(_ context.Context, e models.CartEvent) error {
		events = append(events, e)
		return nil
	})
	r := newTestRouter(stubProducts{product: p}, sink)

	req := httptest.NewRequest(http.MethodGet, "/customizer/"+p.ID.Hex(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found")

	w = postCart(r, p.ID.Hex(), url.Values{"selectedColor": {"Gold"}, "selectedMaterial": {"Metal"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, events)
}
