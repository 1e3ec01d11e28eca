package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
)

// FabricController manages the shared fabric library.
type FabricController struct {
	fabrics services.FabricService
}

func NewFabricController(fabrics services.FabricService) *FabricController {
	return &FabricController{fabrics: fabrics}
}

// List handles GET /api/admin/fabrics?category=.
func (fc *FabricController) List(c *gin.Context) {
	ctx := c.Request.Context()
	category := models.FabricCategory(c.Query("category"))
	if category == "" {
		c.JSON(http.StatusOK, gin.H{"fabrics": fc.fabrics.List(ctx)})
		return
	}
	if !category.Valid() {
		handleServiceError(c, apperrors.Validation("Invalid fabric category"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"fabrics": fc.fabrics.ByCategory(ctx, category)})
}

func (fc *FabricController) Create(c *gin.Context) {
	var req models.FabricOptionRequest
	if !bindJSON(c, &req) {
		return
	}
	fabric, err := fc.fabrics.Add(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"fabric": fabric})
}

func (fc *FabricController) Update(c *gin.Context) {
	var req models.FabricOptionRequest
	if !bindJSON(c, &req) {
		return
	}
	fabric, err := fc.fabrics.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fabric": fabric})
}

func (fc *FabricController) Delete(c *gin.Context) {
	if err := fc.fabrics.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fabric deleted"})
}

type fabricPriceRequest struct {
	ProductID string                           `json:"product_id" binding:"required"`
	Selection map[models.FabricCategory]string `json:"selection"`
}

// Price handles POST /api/admin/fabrics/price.
func (fc *FabricController) Price(c *gin.Context) {
	var req fabricPriceRequest
	if !bindJSON(c, &req) {
		return
	}
	price, err := fc.fabrics.Price(c.Request.Context(), req.ProductID, req.Selection)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_id": req.ProductID, "price": price})
}
