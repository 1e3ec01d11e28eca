package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
)

// CartController exposes the signed-in shopper's cart.
type CartController struct {
	cart    services.CartService
	catalog services.CatalogService
}

func NewCartController(cart services.CartService, catalog services.CatalogService) *CartController {
	return &CartController{cart: cart, catalog: catalog}
}

func (cc *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cc.cart.View(c.Request.Context(), account(c)))
}

// AddItem handles POST /api/cart/items. Quantity defaults to 1. An unknown
// product id is handed to the cart as a missing product.
func (cc *CartController) AddItem(c *gin.Context) {
	var req models.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	ctx := c.Request.Context()
	var product *models.Product
	if detail, err := cc.catalog.ProductByID(ctx, req.ProductID); err == nil {
		product = &detail.Product
	}
	if err := cc.cart.Add(ctx, account(c), product, quantity); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cc.cart.View(ctx, account(c)))
}

// UpdateItem handles PUT /api/cart/items/:productId.
func (cc *CartController) UpdateItem(c *gin.Context) {
	var req models.SetQuantityRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	if err := cc.cart.SetQuantity(ctx, account(c), c.Param("productId"), req.Quantity); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cc.cart.View(ctx, account(c)))
}

// RemoveItem handles DELETE /api/cart/items/:productId.
func (cc *CartController) RemoveItem(c *gin.Context) {
	ctx := c.Request.Context()
	if err := cc.cart.Remove(ctx, account(c), c.Param("productId")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cc.cart.View(ctx, account(c)))
}

func (cc *CartController) Clear(c *gin.Context) {
	ctx := c.Request.Context()
	cc.cart.Clear(ctx, account(c))
	c.JSON(http.StatusOK, cc.cart.View(ctx, account(c)))
}
