package controllers_test

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tebele-dev/tailor-made-couture/middleware"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	testShopper = &models.User{ID: "2", Email: "customer@tailormade.com", Name: "John Customer", Role: models.RoleShopper}
	testAdmin   = &models.User{ID: "1", Email: "admin@tailormade.com", Name: "Admin User", Role: models.RoleAdmin}
)

// withUser signs every request on the router in as user.
func withUser(user *models.User, sessionID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetUser(c, user, sessionID)
		c.Next()
	}
}

type mockAuthService struct {
	loginFn   func(ctx context.Context, email, password string) (*models.AuthResponse, error)
	signupFn  func(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error)
	logoutFn  func(ctx context.Context, sessionID string)
	hydrateFn func(ctx context.Context, sessionID string) *models.User
	parseFn   func(token string) (*services.SessionClaims, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	return m.signupFn(ctx, req)
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) {
	if m.logoutFn != nil {
		m.logoutFn(ctx, sessionID)
	}
}

func (m *mockAuthService) Hydrate(ctx context.Context, sessionID string) *models.User {
	if m.hydrateFn != nil {
		return m.hydrateFn(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) ParseToken(token string) (*services.SessionClaims, error) {
	return m.parseFn(token)
}

type mockCartService struct {
	addFn         func(ctx context.Context, owner string, product *models.Product, quantity int) error
	removeFn      func(ctx context.Context, owner, productID string) error
	setQuantityFn func(ctx context.Context, owner, productID string, quantity int) error
	viewFn        func(ctx context.Context, owner string) models.CartView
	cleared       []string
}

func (m *mockCartService) Add(ctx context.Context, owner string, product *models.Product, quantity int) error {
	return m.addFn(ctx, owner, product, quantity)
}

func (m *mockCartService) Remove(ctx context.Context, owner, productID string) error {
	return m.removeFn(ctx, owner, productID)
}

func (m *mockCartService) SetQuantity(ctx context.Context, owner, productID string, quantity int) error {
	return m.setQuantityFn(ctx, owner, productID, quantity)
}

func (m *mockCartService) Clear(_ context.Context, owner string) {
	m.cleared = append(m.cleared, owner)
}

func (m *mockCartService) Items(ctx context.Context, owner string) []models.CartItem {
	return m.View(ctx, owner).Items
}

func (m *mockCartService) Count(ctx context.Context, owner string) int {
	return m.View(ctx, owner).Count
}

func (m *mockCartService) Total(ctx context.Context, owner string) decimal.Decimal {
	return m.View(ctx, owner).Total
}

func (m *mockCartService) View(ctx context.Context, owner string) models.CartView {
	if m.viewFn != nil {
		return m.viewFn(ctx, owner)
	}
	return models.CartView{Items: []models.CartItem{}, Total: decimal.Zero}
}

// mockCatalogService only answers ProductByID; the cart controller needs nothing else.
type mockCatalogService struct {
	services.CatalogService
	productByIDFn func(ctx context.Context, id string) (*models.ProductDetail, error)
}

func (m *mockCatalogService) ProductByID(ctx context.Context, id string) (*models.ProductDetail, error) {
	return m.productByIDFn(ctx, id)
}

type mockInventoryService struct {
	summaryFn func(ctx context.Context, query, category string) models.InventorySummary
	addFn     func(ctx context.Context, req models.InventoryRequest) (*models.InventoryItem, error)
	updateFn  func(ctx context.Context, id string, req models.InventoryRequest) (*models.InventoryItem, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockInventoryService) Summary(ctx context.Context, query, category string) models.InventorySummary {
	return m.summaryFn(ctx, query, category)
}

func (m *mockInventoryService) Add(ctx context.Context, req models.InventoryRequest) (*models.InventoryItem, error) {
	return m.addFn(ctx, req)
}

func (m *mockInventoryService) Update(ctx context.Context, id string, req models.InventoryRequest) (*models.InventoryItem, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockInventoryService) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}
