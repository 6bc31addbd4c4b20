package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/controllers"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/middleware"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ---- concrete mock implementing services.OrderService ----

type mockOrderSvc struct {
	order      *models.Order
	orders     []models.Order
	err        error
	lastUser   string
	lastReq    *models.CreateOrderRequest
	lastStatus string
}

func (m *mockOrderSvc) CreateOrder(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, error) {
	m.lastUser, m.lastReq = userID, req
	return m.order, m.err
}
func (m *mockOrderSvc) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return m.order, m.err
}
func (m *mockOrderSvc) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	m.lastUser = userID
	return m.orders, m.err
}
func (m *mockOrderSvc) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return m.orders, m.err
}
func (m *mockOrderSvc) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	m.lastStatus = status
	return m.order, m.err
}
func (m *mockOrderSvc) UpdateDelivery(ctx context.Context, id string, req *models.UpdateDeliveryRequest) (*models.Order, error) {
	return m.order, m.err
}

// ---- helpers ----

// asUser stands in for RequireAuth.
func asUser(userID string, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.UserContextKey, userID)
			c.Set(middleware.AdminContextKey, admin)
		}
		c.Next()
	}
}

func newRouter(userID string, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware(zap.NewNop()), asUser(userID, admin))
	return r
}

func setupOrderRouter(svc *mockOrderSvc, userID string, admin bool) *gin.Engine {
	r := newRouter(userID, admin)
	oc := controllers.NewOrderController(svc)
	r.POST("/api/orders", oc.Create)
	r.GET("/api/orders/:id", oc.Get)
	r.GET("/api/orders/user/:userId", oc.ListForUser)
	r.PUT("/api/admin/orders/:id/status", oc.UpdateStatus)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apperrors.Error {
	t.Helper()
	var e apperrors.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func sampleOrder(userID string) *models.Order {
	return &models.Order{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Items:  []models.LineItem{{ProductID: "p1", Name: "Milk", Price: 30, Quantity: 2}},
		Total:  60,
		Status: models.StatusPending,
	}
}

// ---- tests ----

func TestCreateOrder_Success(t *testing.T) {
	svc := &mockOrderSvc{order: sampleOrder("user-1")}
	r := setupOrderRouter(svc, "user-1", false)

	body, _ := json.Marshal(models.CreateOrderRequest{
		Items: []models.LineItem{{ProductID: "p1", Name: "Milk", Price: 30, Quantity: 2}},
		Total: 60,
		ShippingAddress: &models.ShippingAddress{
			FullName: "Asha", Phone: "1", Address: "a", City: "c", State: "s", Pincode: "1",
		},
	})
	w := do(r, http.MethodPost, "/api/orders", string(body))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user-1", svc.lastUser)
	require.NotNil(t, svc.lastReq)
	assert.Len(t, svc.lastReq.Items, 1)

	var got models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestCreateOrder_ServiceError(t *testing.T) {
	svc := &mockOrderSvc{err: apperrors.BadRequest("Product out of stock: Milk")}
	r := setupOrderRouter(svc, "user-1", false)

	w := do(r, http.MethodPost, "/api/orders", `{"items":[]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product out of stock: Milk", decodeError(t, w).Message)
}

func TestCreateOrder_BadJSON(t *testing.T) {
	r := setupOrderRouter(&mockOrderSvc{}, "user-1", false)

	w := do(r, http.MethodPost, "/api/orders", "not-json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decodeError(t, w).Message)
}

func TestCreateOrder_NoUser(t *testing.T) {
	r := setupOrderRouter(&mockOrderSvc{}, "", false)

	w := do(r, http.MethodPost, "/api/orders", `{}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetOrder_Ownership(t *testing.T) {
	tests := []struct {
		name   string
		caller string
		admin  bool
		want   int
	}{
		{"owner", "user-1", false, http.StatusOK},
		{"other customer", "user-2", false, http.StatusForbidden},
		{"admin", "admin-1", true, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockOrderSvc{order: sampleOrder("user-1")}
			r := setupOrderRouter(svc, tt.caller, tt.admin)

			w := do(r, http.MethodGet, "/api/orders/"+svc.order.ID.Hex(), "")

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	r := setupOrderRouter(&mockOrderSvc{err: apperrors.ErrOrderNotFound}, "user-1", false)

	w := do(r, http.MethodGet, "/api/orders/abc", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", decodeError(t, w).Message)
}

func TestListForUser(t *testing.T) {
	svc := &mockOrderSvc{orders: []models.Order{*sampleOrder("user-1"), *sampleOrder("user-1")}}
	r := setupOrderRouter(svc, "user-1", false)

	w := do(r, http.MethodGet, "/api/orders/user/user-1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", svc.lastUser)
	var got []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestUpdateStatus(t *testing.T) {
	order := sampleOrder("user-1")
	order.Status = models.StatusShipped
	svc := &mockOrderSvc{order: order}
	r := setupOrderRouter(svc, "admin-1", true)

	w := do(r, http.MethodPut, "/api/admin/orders/"+order.ID.Hex()+"/status", `{"status":"Shipped"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusShipped, svc.lastStatus)
}

func TestUpdateStatus_Invalid(t *testing.T) {
	svc := &mockOrderSvc{err: apperrors.ErrInvalidStatus}
	r := setupOrderRouter(svc, "admin-1", true)

	w := do(r, http.MethodPut, "/api/admin/orders/abc/status", `{"status":"Lost"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status", decodeError(t, w).Message)
}

func TestInternalErrorsAreGeneric(t *testing.T) {
	svc := &mockOrderSvc{err: apperrors.Internal(assert.AnError)}
	r := setupOrderRouter(svc, "user-1", false)

	w := do(r, http.MethodGet, "/api/orders/user/user-1", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Internal server error")
	assert.False(t, bytes.Contains(w.Body.Bytes(), []byte(assert.AnError.Error())))
}
