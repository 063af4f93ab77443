package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/cart"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/category"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/order"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/product"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/settings"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testJWTSecret = "test-secret"

// ---------- service mocks ----------

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetList(ctx context.Context, opts product.ProductQueryOptions) ([]*product.Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) GetFeatured(ctx context.Context) (*product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, input product.NewProductInput) (*product.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, input product.UpdateProductInput) (*product.Product, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*category.Category, error) {
	args := m.Called(ctx, filter, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryService) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) AddCategory(ctx context.Context, name string) (*category.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, id, name string) (*category.Category, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) SubmitOrder(ctx context.Context, input order.NewOrderInput) (*order.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrders(ctx context.Context, opts order.OrderQueryOptions) ([]*order.Order, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderDetail(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, id string, status order.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSettings(ctx context.Context) (*settings.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Settings), args.Error(1)
}

func (m *MockSettingsService) UpdateSettings(ctx context.Context, input settings.UpdateSettingsInput) (*settings.Settings, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Settings), args.Error(1)
}

// ---------- helpers ----------

type testEnv struct {
	router     *gin.Engine
	products   *MockProductService
	categories *MockCategoryService
	orders     *MockOrderService
	settings   *MockSettingsService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		products:   new(MockProductService),
		categories: new(MockCategoryService),
		orders:     new(MockOrderService),
		settings:   new(MockSettingsService),
	}

	h := NewHandler(env.products, env.categories, env.orders, env.settings, cart.NewStore(), nil)
	env.router = Router(h, testJWTSecret)
	return env
}

func doJSON(t *testing.T, r *gin.Engine, method, path, sessionID string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func adminToken(t *testing.T) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func sampleProduct() *product.Product {
	return &product.Product{
		ID:    "prod-1",
		Name:  "Classic Burger",
		Price: 45000,
	}
}

// ---------- storefront ----------

func TestGetCart_IssuesSession(t *testing.T) {
	env := newTestEnv()

	w := doJSON(t, env.router, http.MethodGet, "/api/cart", "", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(SessionHeader))

	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, float64(0), body["item_count"])
}

func TestAddToCart(t *testing.T) {
	t.Run("Adds the catalog item and returns totals", func(t *testing.T) {
		env := newTestEnv()
		env.products.On("GetByID", mock.Anything, "prod-1").Return(sampleProduct(), nil)

		w := doJSON(t, env.router, http.MethodPost, "/api/cart", "sess-1",
			gin.H{"product_id": "prod-1"}, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(45000), body["total"])
		assert.Equal(t, float64(1), body["item_count"])
	})

	t.Run("Discounted item enters at its displayed price", func(t *testing.T) {
		env := newTestEnv()
		p := sampleProduct()
		p.Price = 52000
		p.Discount = 15
		env.products.On("GetByID", mock.Anything, "prod-1").Return(p, nil)

		w := doJSON(t, env.router, http.MethodPost, "/api/cart", "sess-1",
			gin.H{"product_id": "prod-1"}, nil)

		body := decodeBody(t, w)
		assert.Equal(t, float64(44200), body["total"])
	})

	t.Run("Unknown product is 404", func(t *testing.T) {
		env := newTestEnv()
		env.products.On("GetByID", mock.Anything, "missing").
			Return(nil, product.ErrProductNotFound)

		w := doJSON(t, env.router, http.MethodPost, "/api/cart", "sess-1",
			gin.H{"product_id": "missing"}, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCartMutations(t *testing.T) {
	env := newTestEnv()
	env.products.On("GetByID", mock.Anything, "prod-1").Return(sampleProduct(), nil)

	doJSON(t, env.router, http.MethodPost, "/api/cart", "sess-1", gin.H{"product_id": "prod-1"}, nil)
	doJSON(t, env.router, http.MethodPost, "/api/cart", "sess-1", gin.H{"product_id": "prod-1"}, nil)

	t.Run("Double add merges into one line", func(t *testing.T) {
		w := doJSON(t, env.router, http.MethodGet, "/api/cart", "sess-1", nil, nil)
		body := decodeBody(t, w)

		assert.Len(t, body["items"], 1)
		assert.Equal(t, float64(2), body["item_count"])
		assert.Equal(t, float64(90000), body["total"])
	})

	t.Run("Quantity zero removes the line", func(t *testing.T) {
		w := doJSON(t, env.router, http.MethodPatch, "/api/cart/prod-1", "sess-1",
			gin.H{"quantity": 0}, nil)
		body := decodeBody(t, w)

		assert.Equal(t, float64(0), body["item_count"])
	})

	t.Run("Clear empties the cart", func(t *testing.T) {
		doJSON(t, env.router, http.MethodPost, "/api/cart", "sess-1", gin.H{"product_id": "prod-1"}, nil)

		w := doJSON(t, env.router, http.MethodDelete, "/api/cart", "sess-1", nil, nil)
		body := decodeBody(t, w)

		assert.Equal(t, float64(0), body["total"])
	})
}

func TestSubmitCheckout(t *testing.T) {
	validForm := gin.H{
		"customer_name": "Ali Valiyev",
		"phone":         "+998901234567",
		"address":       "Chilonzor, 1-mavze, 15-uy",
	}

	t.Run("Valid form creates an order", func(t *testing.T) {
		env := newTestEnv()
		env.products.On("GetByID", mock.Anything, "prod-1").Return(sampleProduct(), nil)
		env.orders.On("SubmitOrder", mock.Anything, mock.MatchedBy(func(input order.NewOrderInput) bool {
			return input.CustomerName == "Ali Valiyev" &&
				input.Total == 45000 &&
				len(input.Items) == 1
		})).Return(&order.Order{ID: "order-1", Total: 45000}, nil)

		doJSON(t, env.router, http.MethodPost, "/api/cart", "sess-submit", gin.H{"product_id": "prod-1"}, nil)

		w := doJSON(t, env.router, http.MethodPut, "/api/checkout/form", "sess-submit", validForm, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, env.router, http.MethodPost, "/api/checkout", "sess-submit", nil, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "order-1", body["order_id"])
		assert.Equal(t, "success", body["state"])
		env.orders.AssertExpectations(t)
	})

	t.Run("Close is suppressed while the confirmation shows", func(t *testing.T) {
		env := newTestEnv()
		env.products.On("GetByID", mock.Anything, "prod-1").Return(sampleProduct(), nil)
		env.orders.On("SubmitOrder", mock.Anything, mock.Anything).
			Return(&order.Order{ID: "order-1"}, nil)

		doJSON(t, env.router, http.MethodPost, "/api/cart", "sess-close", gin.H{"product_id": "prod-1"}, nil)
		doJSON(t, env.router, http.MethodPut, "/api/checkout/form", "sess-close", validForm, nil)
		doJSON(t, env.router, http.MethodPost, "/api/checkout", "sess-close", nil, nil)

		w := doJSON(t, env.router, http.MethodPost, "/api/checkout/close", "sess-close", nil, nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["closed"])
	})

	t.Run("Invalid form responds 422 with field messages", func(t *testing.T) {
		env := newTestEnv()
		env.products.On("GetByID", mock.Anything, "prod-1").Return(sampleProduct(), nil)

		doJSON(t, env.router, http.MethodPost, "/api/cart", "sess-invalid", gin.H{"product_id": "prod-1"}, nil)
		doJSON(t, env.router, http.MethodPut, "/api/checkout/form", "sess-invalid",
			gin.H{"customer_name": "A", "phone": "12345678", "address": "abcd"}, nil)

		w := doJSON(t, env.router, http.MethodPost, "/api/checkout", "sess-invalid", nil, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "validation_failed", body["error"])

		fields := body["fields"].(map[string]any)
		assert.Contains(t, fields, "customer_name")
		assert.Contains(t, fields, "phone")
		assert.Contains(t, fields, "address")
		env.orders.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
	})

	t.Run("Empty cart responds 400", func(t *testing.T) {
		env := newTestEnv()

		doJSON(t, env.router, http.MethodPut, "/api/checkout/form", "sess-empty", validForm, nil)
		w := doJSON(t, env.router, http.MethodPost, "/api/checkout", "sess-empty", nil, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Submission service failure responds 502 and preserves the form", func(t *testing.T) {
		env := newTestEnv()
		env.products.On("GetByID", mock.Anything, "prod-1").Return(sampleProduct(), nil)
		env.orders.On("SubmitOrder", mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		doJSON(t, env.router, http.MethodPost, "/api/cart", "sess-fail", gin.H{"product_id": "prod-1"}, nil)
		doJSON(t, env.router, http.MethodPut, "/api/checkout/form", "sess-fail", validForm, nil)

		w := doJSON(t, env.router, http.MethodPost, "/api/checkout", "sess-fail", nil, nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)

		w = doJSON(t, env.router, http.MethodGet, "/api/checkout/status", "sess-fail", nil, nil)
		body := decodeBody(t, w)
		assert.Equal(t, "idle", body["state"])

		form := body["form"].(map[string]any)
		assert.Equal(t, "Ali Valiyev", form["customer_name"])

		w = doJSON(t, env.router, http.MethodGet, "/api/cart", "sess-fail", nil, nil)
		assert.Equal(t, float64(45000), decodeBody(t, w)["total"])
	})
}

func TestGetProducts(t *testing.T) {
	env := newTestEnv()

	slug := "burgers"
	env.products.On("GetList", mock.Anything, mock.MatchedBy(func(opts product.ProductQueryOptions) bool {
		return opts.CategorySlug != nil && *opts.CategorySlug == slug
	})).Return([]*product.Product{sampleProduct()}, nil)

	w := doJSON(t, env.router, http.MethodGet, "/api/products?category=burgers", "sess-1", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["products"], 1)
}

func TestGetFeaturedProduct(t *testing.T) {
	env := newTestEnv()

	p := sampleProduct()
	p.Price = 52000
	p.Discount = 15
	p.IsFeatured = true
	env.products.On("GetFeatured", mock.Anything).Return(p, nil)

	w := doJSON(t, env.router, http.MethodGet, "/api/products/featured", "sess-1", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(44200), body["effective_price"])
	assert.Equal(t, utils.FormatPrice(44200), body["display_price"])
}

// ---------- admin ----------

func TestAdminRoutes_AuthGate(t *testing.T) {
	env := newTestEnv()

	t.Run("No token is unauthorized", func(t *testing.T) {
		w := doJSON(t, env.router, http.MethodGet, "/api/admin/orders", "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Admin token passes", func(t *testing.T) {
		env.orders.On("GetOrders", mock.Anything, mock.Anything).
			Return([]*order.Order{}, nil)

		w := doJSON(t, env.router, http.MethodGet, "/api/admin/orders", "", nil,
			map[string]string{"Authorization": adminToken(t)})

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	env := newTestEnv()
	headers := map[string]string{"Authorization": adminToken(t)}

	t.Run("Valid transition", func(t *testing.T) {
		env.orders.On("UpdateOrderStatus", mock.Anything, "order-1", order.StatusPreparing).
			Return(nil)

		w := doJSON(t, env.router, http.MethodPatch, "/api/admin/orders/order-1/status", "",
			gin.H{"status": "preparing"}, headers)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown status is 400", func(t *testing.T) {
		env.orders.On("UpdateOrderStatus", mock.Anything, "order-1", order.Status("shipped")).
			Return(order.ErrInvalidStatus)

		w := doJSON(t, env.router, http.MethodPatch, "/api/admin/orders/order-1/status", "",
			gin.H{"status": "shipped"}, headers)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminUpdateSettings(t *testing.T) {
	env := newTestEnv()
	headers := map[string]string{"Authorization": adminToken(t)}

	fee := int64(15000)
	env.settings.On("UpdateSettings", mock.Anything, mock.MatchedBy(func(input settings.UpdateSettingsInput) bool {
		return input.DeliveryFee != nil && *input.DeliveryFee == fee
	})).Return(&settings.Settings{DeliveryFee: fee}, nil)

	w := doJSON(t, env.router, http.MethodPatch, "/api/admin/settings", "",
		gin.H{"delivery_fee": fee}, headers)

	assert.Equal(t, http.StatusOK, w.Code)
}
