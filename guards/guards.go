// Package guards decides which views a visitor may open and where the
// rest are sent instead.
package guards

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/middleware"
	"github.com/tebele-dev/tailor-made-couture/models"
)

const (
	RootPath  = "/"
	LoginPath = "/login"
)

type Decision struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// Predicate decides access for a user; nil is an anonymous visitor.
type Predicate func(user *models.User) Decision

func allow() Decision { return Decision{Allowed: true} }

func redirect(to string) Decision { return Decision{Redirect: to} }

func Public(*models.User) Decision {
	return allow()
}

func AdminOnly(user *models.User) Decision {
	if user.IsAdmin() {
		return allow()
	}
	return redirect(RootPath)
}

func ShopperOnly(user *models.User) Decision {
	if user.IsShopper() {
		return allow()
	}
	return redirect(RootPath)
}

func Authenticated(user *models.User) Decision {
	if user.IsAuthenticated() {
		return allow()
	}
	return redirect(LoginPath)
}

// Guard admits the request when decide allows the current user. Otherwise it
// answers 302 to the decision's redirect.
func Guard(decide Predicate) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := decide(middleware.CurrentUser(c))
		if d.Allowed {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, d.Redirect)
		c.Abort()
	}
}

// Route is one entry of the storefront routing table.
type Route struct {
	Pattern string    `json:"pattern"`
	View    string    `json:"view"`
	Group   string    `json:"group"`
	Guard   Predicate `json:"-"`
}

const (
	GroupPublic  = "public"
	GroupAdmin   = "admin"
	GroupShopper = "shopper"

	ViewNotFound = "not-found"
)

var routeTable = []Route{
	{Pattern: "home", View: "shopper-home", Group: GroupPublic, Guard: Public},
	{Pattern: "everyview", View: "everyview", Group: GroupPublic, Guard: Public},
	{Pattern: "custom-design", View: "custom-design", Group: GroupPublic, Guard: Public},
	{Pattern: "products", View: "products", Group: GroupPublic, Guard: Public},
	{Pattern: "products/:id", View: "product-detail", Group: GroupPublic, Guard: Public},
	{Pattern: "about", View: "about", Group: GroupPublic, Guard: Public},
	{Pattern: "login", View: "login", Group: GroupPublic, Guard: Public},
	{Pattern: "signup", View: "signup", Group: GroupPublic, Guard: Public},

	{Pattern: "admin", View: "admin-home", Group: GroupAdmin, Guard: AdminOnly},
	{Pattern: "inventory", View: "inventory", Group: GroupAdmin, Guard: AdminOnly},
	{Pattern: "admin-design", View: "admin-design", Group: GroupAdmin, Guard: AdminOnly},
	{Pattern: "fabric", View: "fabric", Group: GroupAdmin, Guard: AdminOnly},

	{Pattern: "cart", View: "cart", Group: GroupShopper, Guard: ShopperOnly},
	{Pattern: "checkout", View: "checkout", Group: GroupShopper, Guard: ShopperOnly},
	{Pattern: "address-book", View: "address-book", Group: GroupShopper, Guard: ShopperOnly},
	{Pattern: "account", View: "account", Group: GroupShopper, Guard: ShopperOnly},
	{Pattern: "orders", View: "orders", Group: GroupShopper, Guard: ShopperOnly},
}

var notFound = Route{Pattern: "**", View: ViewNotFound, Group: GroupPublic, Guard: Public}

func Routes() []Route {
	return append([]Route(nil), routeTable...)
}

// Resolve finds the route for path. The empty path is home, and anything
// unknown is the not-found view.
func Resolve(path string) (Route, map[string]string) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		path = "home"
	}
	segments := strings.Split(path, "/")
	for _, r := range routeTable {
		if params, ok := match(r.Pattern, segments); ok {
			return r, params
		}
	}
	return notFound, nil
}

func match(pattern string, segments []string) (map[string]string, bool) {
	parts := strings.Split(pattern, "/")
	if len(parts) != len(segments) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range parts {
		if strings.HasPrefix(p, ":") {
			if segments[i] == "" {
				return nil, false
			}
			params[p[1:]] = segments[i]
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	return params, true
}

// Navigation is the outcome of opening path as user.
type Navigation struct {
	Path     string            `json:"path"`
	View     string            `json:"view"`
	Group    string            `json:"group"`
	Params   map[string]string `json:"params,omitempty"`
	Decision Decision          `json:"decision"`
}

func Navigate(path string, user *models.User) Navigation {
	r, params := Resolve(path)
	return Navigation{
		Path:     path,
		View:     r.View,
		Group:    r.Group,
		Params:   params,
		Decision: r.Guard(user),
	}
}
