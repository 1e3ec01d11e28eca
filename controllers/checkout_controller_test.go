package controllers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/controllers"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
)

type mockCheckoutService struct {
	services.CheckoutService
	beginFn      func(ctx context.Context, user *models.User) (*models.CheckoutState, error)
	goToStepFn   func(ctx context.Context, account string, step int) (*models.CheckoutState, error)
	placeOrderFn func(ctx context.Context, account string) (*models.OrderConfirmation, error)
	ordersFn     func(ctx context.Context, account string, page, limit int) ([]models.Order, int64, error)
}

func (m *mockCheckoutService) Begin(ctx context.Context, user *models.User) (*models.CheckoutState, error) {
	return m.beginFn(ctx, user)
}

func (m *mockCheckoutService) GoToStep(ctx context.Context, account string, step int) (*models.CheckoutState, error) {
	return m.goToStepFn(ctx, account, step)
}

func (m *mockCheckoutService) PlaceOrder(ctx context.Context, account string) (*models.OrderConfirmation, error) {
	return m.placeOrderFn(ctx, account)
}

func (m *mockCheckoutService) Orders(ctx context.Context, account string, page, limit int) ([]models.Order, int64, error) {
	return m.ordersFn(ctx, account, page, limit)
}

func setupCheckoutRouter(svc *mockCheckoutService) *gin.Engine {
	r := gin.New()
	r.Use(withUser(testShopper, "sid"))
	h := controllers.NewCheckoutController(svc)
	r.POST("/checkout", h.Begin)
	r.PUT("/checkout/step", h.GoToStep)
	r.POST("/checkout/place-order", h.PlaceOrder)
	r.GET("/orders", h.ListOrders)
	return r
}

func TestCheckoutController_BeginUsesSignedInUser(t *testing.T) {
	svc := &mockCheckoutService{
		beginFn: func(_ context.Context, user *models.User) (*models.CheckoutState, error) {
			assert.Equal(t, testShopper, user)
			return &models.CheckoutState{Step: models.StepCart, StepName: "cart", TotalSteps: 4}, nil
		},
	}
	r := setupCheckoutRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/checkout", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"step_name":"cart"`)
}

func TestCheckoutController_GoToStep(t *testing.T) {
	svc := &mockCheckoutService{
		goToStepFn: func(_ context.Context, account string, step int) (*models.CheckoutState, error) {
			assert.Equal(t, "customer@tailormade.com", account)
			return &models.CheckoutState{Step: models.CheckoutStep(step)}, nil
		},
	}
	r := setupCheckoutRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/checkout/step", bytes.NewBufferString(`{"step":3}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"step":3`)
}

func TestCheckoutController_PlaceOrder(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &mockCheckoutService{
			placeOrderFn: func(context.Context, string) (*models.OrderConfirmation, error) {
				return &models.OrderConfirmation{OrderNumber: "ORD-1700000000000"}, nil
			},
		}
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/checkout/place-order", nil)
		setupCheckoutRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"order_number":"ORD-1700000000000"`)
	})

	t.Run("incomplete checkout", func(t *testing.T) {
		svc := &mockCheckoutService{
			placeOrderFn: func(context.Context, string) (*models.OrderConfirmation, error) {
				return nil, apperrors.Validation("Please select a shipping address")
			},
		}
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/checkout/place-order", nil)
		setupCheckoutRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Please select a shipping address")
	})
}

func TestCheckoutController_ListOrdersPagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "?page=2&limit=5", 2, 5},
		{"limit capped", "?limit=500", 1, 100},
		{"invalid ignored", "?page=-3&limit=abc", 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCheckoutService{
				ordersFn: func(_ context.Context, _ string, page, limit int) ([]models.Order, int64, error) {
					assert.Equal(t, tt.wantPage, page)
					assert.Equal(t, tt.wantLimit, limit)
					return []models.Order{}, 12, nil
				},
			}
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/orders"+tt.query, nil)
			setupCheckoutRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"total":12`)
		})
	}
}
