package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/controllers"
	"github.com/tebele-dev/tailor-made-couture/guards"
)

// Controllers bundles every HTTP handler set the storefront serves.
type Controllers struct {
	Auth          *controllers.AuthController
	Catalog       *controllers.CatalogController
	Cart          *controllers.CartController
	Checkout      *controllers.CheckoutController
	AddressBook   *controllers.AddressBookController
	Notifications *controllers.NotificationController
	Consent       *controllers.ConsentController
	Inventory     *controllers.InventoryController
	Fabrics       *controllers.FabricController
	AdminDesign   *controllers.AdminDesignController
}

// Register mounts the API under /api. Shopper and admin groups are guarded
// the same way as the matching storefront views.
func Register(r *gin.Engine, h Controllers) {
	api := r.Group("/api")

	RegisterPublicRoutes(api, h)
	RegisterShopperRoutes(api.Group("", guards.Guard(guards.ShopperOnly)), h)
	RegisterAdminRoutes(api.Group("/admin", guards.Guard(guards.AdminOnly)), h)

	notifications := api.Group("/notifications", guards.Guard(guards.Authenticated))
	notifications.GET("", h.Notifications.List)
	notifications.DELETE("", h.Notifications.Clear)
	notifications.DELETE("/:id", h.Notifications.Dismiss)
}

func RegisterPublicRoutes(api *gin.RouterGroup, h Controllers) {
	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/me", h.Auth.Me)

	products := api.Group("/products")
	products.GET("", h.Catalog.ListProducts)
	products.GET("/featured", h.Catalog.Featured)
	products.GET("/ready-to-wear", h.Catalog.ReadyToWear)
	products.GET("/custom", h.Catalog.Custom)
	products.GET("/:id", h.Catalog.GetProduct)
	products.GET("/:id/properties", h.Catalog.Properties)
	products.POST("/:id/quote", h.Catalog.Quote)
	api.GET("/categories", h.Catalog.Categories)

	consent := api.Group("/consent")
	consent.GET("", h.Consent.Get)
	consent.PUT("", h.Consent.Save)
	consent.POST("/accept-all", h.Consent.AcceptAll)
	consent.POST("/accept-necessary", h.Consent.AcceptNecessary)
	consent.GET("/:category", h.Consent.Allowed)

	api.GET("/navigation", controllers.Navigate)
	api.GET("/navigation/routes", controllers.RouteTable)
}

func RegisterShopperRoutes(g *gin.RouterGroup, h Controllers) {
	cart := g.Group("/cart")
	cart.GET("", h.Cart.GetCart)
	cart.DELETE("", h.Cart.Clear)
	cart.POST("/items", h.Cart.AddItem)
	cart.PUT("/items/:productId", h.Cart.UpdateItem)
	cart.DELETE("/items/:productId", h.Cart.RemoveItem)

	checkout := g.Group("/checkout")
	checkout.POST("", h.Checkout.Begin)
	checkout.GET("", h.Checkout.State)
	checkout.PUT("/step", h.Checkout.GoToStep)
	checkout.POST("/next", h.Checkout.NextStep)
	checkout.POST("/prev", h.Checkout.PrevStep)
	checkout.POST("/addresses", h.Checkout.AddAddress)
	checkout.PUT("/addresses/:id/select", h.Checkout.SelectAddress)
	checkout.POST("/payment-methods", h.Checkout.AddPaymentMethod)
	checkout.PUT("/payment-methods/:id/select", h.Checkout.SelectPaymentMethod)
	checkout.POST("/place-order", h.Checkout.PlaceOrder)

	g.GET("/orders", h.Checkout.ListOrders)

	book := g.Group("/address-book")
	book.GET("", h.AddressBook.List)
	book.POST("", h.AddressBook.Create)
	book.PUT("/:id", h.AddressBook.Update)
	book.DELETE("/:id", h.AddressBook.Delete)
	book.PUT("/:id/default", h.AddressBook.SetDefault)
}

func RegisterAdminRoutes(admin *gin.RouterGroup, h Controllers) {
	inventory := admin.Group("/inventory")
	inventory.GET("", h.Inventory.Summary)
	inventory.POST("", h.Inventory.Create)
	inventory.PUT("/:id", h.Inventory.Update)
	inventory.DELETE("/:id", h.Inventory.Delete)

	fabrics := admin.Group("/fabrics")
	fabrics.GET("", h.Fabrics.List)
	fabrics.POST("", h.Fabrics.Create)
	fabrics.POST("/price", h.Fabrics.Price)
	fabrics.PUT("/:id", h.Fabrics.Update)
	fabrics.DELETE("/:id", h.Fabrics.Delete)

	designs := admin.Group("/designs")
	designs.GET("", h.AdminDesign.Blueprints)
	designs.GET("/:productId", h.AdminDesign.Draft)
	designs.DELETE("/:productId", h.AdminDesign.Discard)
	designs.POST("/:productId/commit", h.AdminDesign.Commit)
	designs.POST("/:productId/measurements", h.AdminDesign.AddMeasurement)
	designs.DELETE("/:productId/measurements/:name", h.AdminDesign.RemoveMeasurement)
	designs.POST("/:productId/properties", h.AdminDesign.AddCustomProperty)
	designs.DELETE("/:productId/properties/:propertyId", h.AdminDesign.RemoveCustomProperty)
	designs.POST("/:productId/properties/:propertyId/options", h.AdminDesign.AddPropertyOption)
	designs.DELETE("/:productId/properties/:propertyId/options/:option", h.AdminDesign.RemovePropertyOption)
	designs.POST("/:productId/fabrics", h.AdminDesign.AddFabricOption)
	designs.DELETE("/:productId/fabrics/:fabricId", h.AdminDesign.RemoveFabricOption)
}
