package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/middleware"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
)

// CheckoutController drives the four-step checkout and the order history.
type CheckoutController struct {
	checkout services.CheckoutService
}

func NewCheckoutController(checkout services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

func (cc *CheckoutController) respond(c *gin.Context, state *models.CheckoutState, err error) {
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Begin handles POST /api/checkout.
func (cc *CheckoutController) Begin(c *gin.Context) {
	state, err := cc.checkout.Begin(c.Request.Context(), middleware.CurrentUser(c))
	cc.respond(c, state, err)
}

func (cc *CheckoutController) State(c *gin.Context) {
	state, err := cc.checkout.State(c.Request.Context(), account(c))
	cc.respond(c, state, err)
}

// GoToStep handles PUT /api/checkout/step. Out-of-range steps are ignored.
func (cc *CheckoutController) GoToStep(c *gin.Context) {
	var req models.StepRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := cc.checkout.GoToStep(c.Request.Context(), account(c), req.Step)
	cc.respond(c, state, err)
}

func (cc *CheckoutController) NextStep(c *gin.Context) {
	state, err := cc.checkout.NextStep(c.Request.Context(), account(c))
	cc.respond(c, state, err)
}

func (cc *CheckoutController) PrevStep(c *gin.Context) {
	state, err := cc.checkout.PrevStep(c.Request.Context(), account(c))
	cc.respond(c, state, err)
}

func (cc *CheckoutController) AddAddress(c *gin.Context) {
	var form models.AddressForm
	if !bindJSON(c, &form) {
		return
	}
	state, err := cc.checkout.AddAddress(c.Request.Context(), account(c), form)
	cc.respond(c, state, err)
}

func (cc *CheckoutController) SelectAddress(c *gin.Context) {
	state, err := cc.checkout.SelectAddress(c.Request.Context(), account(c), c.Param("id"))
	cc.respond(c, state, err)
}

func (cc *CheckoutController) AddPaymentMethod(c *gin.Context) {
	var form models.PaymentForm
	if !bindJSON(c, &form) {
		return
	}
	state, err := cc.checkout.AddPaymentMethod(c.Request.Context(), account(c), form)
	cc.respond(c, state, err)
}

func (cc *CheckoutController) SelectPaymentMethod(c *gin.Context) {
	state, err := cc.checkout.SelectPaymentMethod(c.Request.Context(), account(c), c.Param("id"))
	cc.respond(c, state, err)
}

// PlaceOrder handles POST /api/checkout/place-order.
func (cc *CheckoutController) PlaceOrder(c *gin.Context) {
	confirmation, err := cc.checkout.PlaceOrder(c.Request.Context(), account(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": confirmation})
}

// ListOrders handles GET /api/orders.
func (cc *CheckoutController) ListOrders(c *gin.Context) {
	page, limit := parsePaginationParams(c)

	orders, total, err := cc.checkout.Orders(c.Request.Context(), account(c), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}
	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"meta": gin.H{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": totalPages,
			"has_more":    total > int64(page*limit),
		},
	})
}
