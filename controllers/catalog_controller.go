package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
)

// CatalogController serves the public product catalog and design quotes.
type CatalogController struct {
	catalog services.CatalogService
	design  services.DesignService
}

func NewCatalogController(catalog services.CatalogService, design services.DesignService) *CatalogController {
	return &CatalogController{catalog: catalog, design: design}
}

// ListProducts handles GET /api/products?q=&category=.
func (cc *CatalogController) ListProducts(c *gin.Context) {
	products := cc.catalog.Search(c.Request.Context(), c.Query("q"), c.Query("category"))
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (cc *CatalogController) Featured(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": cc.catalog.FeaturedProducts(c.Request.Context())})
}

func (cc *CatalogController) ReadyToWear(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": cc.catalog.ReadyToWear(c.Request.Context())})
}

func (cc *CatalogController) Custom(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": cc.catalog.CustomProducts(c.Request.Context())})
}

func (cc *CatalogController) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": cc.catalog.Categories(c.Request.Context())})
}

// GetProduct handles GET /api/products/:id.
func (cc *CatalogController) GetProduct(c *gin.Context) {
	product, err := cc.catalog.ProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Properties handles GET /api/products/:id/properties?category=.
func (cc *CatalogController) Properties(c *gin.Context) {
	category := models.PropertyCategory(c.Query("category"))
	if !category.Valid() {
		handleServiceError(c, apperrors.Validation("Invalid property category"))
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")
	c.JSON(http.StatusOK, gin.H{
		"properties": cc.catalog.CustomPropertiesByCategory(ctx, id, category),
		"has_any":    cc.catalog.HasCustomPropertiesInCategory(ctx, id, category),
	})
}

// Quote handles POST /api/products/:id/quote.
func (cc *CatalogController) Quote(c *gin.Context) {
	var req models.DesignRequest
	if !bindJSON(c, &req) {
		return
	}
	quote, err := cc.design.Quote(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}
