package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/middleware"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
)

// ConsentController reads and records cookie consent in the visitor's cookies.
type ConsentController struct {
	consent services.ConsentService
}

func NewConsentController(consent services.ConsentService) *ConsentController {
	return &ConsentController{consent: consent}
}

func (cc *ConsentController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, cc.consent.State(middleware.Cookies(c)))
}

// Save handles PUT /api/consent.
func (cc *ConsentController) Save(c *gin.Context) {
	var prefs models.CookiePreferences
	if !bindJSON(c, &prefs) {
		return
	}
	c.JSON(http.StatusOK, cc.consent.Save(middleware.Cookies(c), prefs))
}

func (cc *ConsentController) AcceptAll(c *gin.Context) {
	c.JSON(http.StatusOK, cc.consent.AcceptAll(middleware.Cookies(c)))
}

func (cc *ConsentController) AcceptNecessary(c *gin.Context) {
	c.JSON(http.StatusOK, cc.consent.AcceptNecessary(middleware.Cookies(c)))
}

// Allowed handles GET /api/consent/:category.
func (cc *ConsentController) Allowed(c *gin.Context) {
	category := models.CookieCategory(c.Param("category"))
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"allowed":  cc.consent.IsCategoryAllowed(middleware.Cookies(c), category),
	})
}
