package guards_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tebele-dev/tailor-made-couture/guards"
	"github.com/tebele-dev/tailor-made-couture/middleware"
	"github.com/tebele-dev/tailor-made-couture/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	admin   = &models.User{ID: "u_1", Email: "admin@tailormade.com", Role: models.RoleAdmin}
	shopper = &models.User{ID: "u_2", Email: "customer@tailormade.com", Role: models.RoleShopper}
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		name      string
		predicate guards.Predicate
		user      *models.User
		want      guards.Decision
	}{
		{"public anonymous", guards.Public, nil, guards.Decision{Allowed: true}},
		{"admin allows admin", guards.AdminOnly, admin, guards.Decision{Allowed: true}},
		{"admin rejects shopper", guards.AdminOnly, shopper, guards.Decision{Redirect: "/"}},
		{"admin rejects anonymous", guards.AdminOnly, nil, guards.Decision{Redirect: "/"}},
		{"shopper allows shopper", guards.ShopperOnly, shopper, guards.Decision{Allowed: true}},
		{"shopper rejects admin", guards.ShopperOnly, admin, guards.Decision{Redirect: "/"}},
		{"shopper rejects anonymous", guards.ShopperOnly, nil, guards.Decision{Redirect: "/"}},
		{"authenticated allows admin", guards.Authenticated, admin, guards.Decision{Allowed: true}},
		{"authenticated sends anonymous to login", guards.Authenticated, nil, guards.Decision{Redirect: "/login"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.predicate(tt.user))
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		path  string
		view  string
		group string
	}{
		{"", "shopper-home", guards.GroupPublic},
		{"/", "shopper-home", guards.GroupPublic},
		{"/products", "products", guards.GroupPublic},
		{"/products/4", "product-detail", guards.GroupPublic},
		{"/inventory", "inventory", guards.GroupAdmin},
		{"/fabric/", "fabric", guards.GroupAdmin},
		{"/orders?page=2", "orders", guards.GroupShopper},
		{"/products/4/reviews", guards.ViewNotFound, guards.GroupPublic},
		{"/nowhere", guards.ViewNotFound, guards.GroupPublic},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, _ := guards.Resolve(tt.path)
			assert.Equal(t, tt.view, r.View)
			assert.Equal(t, tt.group, r.Group)
		})
	}

	_, params := guards.Resolve("/products/4")
	assert.Equal(t, map[string]string{"id": "4"}, params)
}

func TestRouteGroups(t *testing.T) {
	groups := map[string]int{}
	for _, r := range guards.Routes() {
		groups[r.Group]++
	}
	assert.Equal(t, map[string]int{guards.GroupPublic: 8, guards.GroupAdmin: 4, guards.GroupShopper: 5}, groups)
}

func TestNavigate(t *testing.T) {
	nav := guards.Navigate("/cart", admin)
	assert.Equal(t, "cart", nav.View)
	assert.Equal(t, guards.Decision{Redirect: "/"}, nav.Decision)

	nav = guards.Navigate("/admin", admin)
	assert.True(t, nav.Decision.Allowed)
}

func guardedRouter(user *models.User, predicate guards.Predicate) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			middleware.SetUser(c, user, "sid")
		}
		c.Next()
	})
	r.GET("/protected", guards.Guard(predicate), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestGuard_Middleware(t *testing.T) {
	tests := []struct {
		name      string
		user      *models.User
		predicate guards.Predicate
		code      int
		location  string
	}{
		{"admin allowed", admin, guards.AdminOnly, http.StatusOK, ""},
		{"shopper redirected home", shopper, guards.AdminOnly, http.StatusFound, "/"},
		{"anonymous redirected to login", nil, guards.Authenticated, http.StatusFound, "/login"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			guardedRouter(tt.user, tt.predicate).ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
			if tt.code != http.StatusOK {
				assert.NotContains(t, w.Body.String(), "ok")
			}
		})
	}
}
