package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/controllers"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCartSvc struct {
	cart    *models.Cart
	err     error
	saved   *models.SaveCartRequest
	cleared string
}

func (m *mockCartSvc) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	return m.cart, m.err
}
func (m *mockCartSvc) SaveCart(ctx context.Context, userID string, req *models.SaveCartRequest) (*models.Cart, error) {
	m.saved = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.Cart{UserID: userID, Items: req.Items}, nil
}
func (m *mockCartSvc) ClearCart(ctx context.Context, userID string) error {
	m.cleared = userID
	return m.err
}

func setupCartRouter(svc *mockCartSvc) *gin.Engine {
	r := newRouter("user-1", false)
	cc := controllers.NewCartController(svc)
	r.GET("/api/cart/:userId", cc.Get)
	r.POST("/api/cart/:userId", cc.Save)
	r.DELETE("/api/cart/:userId", cc.Clear)
	return r
}

func TestCart_GetEmpty(t *testing.T) {
	svc := &mockCartSvc{cart: &models.Cart{UserID: "user-1", Items: []models.LineItem{}}}
	r := setupCartRouter(svc)

	w := do(r, http.MethodGet, "/api/cart/user-1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(mustField(t, w.Body.Bytes(), "items")))
}

func TestCart_Save(t *testing.T) {
	svc := &mockCartSvc{}
	r := setupCartRouter(svc)

	w := do(r, http.MethodPost, "/api/cart/user-1",
		`{"items":[{"productId":"p1","name":"Milk","price":30,"quantity":2}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.saved)
	assert.Equal(t, 2, svc.saved.Items[0].Quantity)
}

func TestCart_SaveValidation(t *testing.T) {
	svc := &mockCartSvc{err: apperrors.BadRequest("Invalid cart items: items[0].quantity must satisfy gte=1")}
	r := setupCartRouter(svc)

	w := do(r, http.MethodPost, "/api/cart/user-1", `{"items":[{"productId":"p1","name":"Milk","quantity":0}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid cart items: items[0].quantity must satisfy gte=1", decodeError(t, w).Message)
}

func TestCart_Clear(t *testing.T) {
	svc := &mockCartSvc{}
	r := setupCartRouter(svc)

	w := do(r, http.MethodDelete, "/api/cart/user-1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", svc.cleared)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func mustField(t *testing.T, body []byte, field string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	return m[field]
}
