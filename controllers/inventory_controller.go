package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
)

// InventoryController handles the admin inventory screens.
type InventoryController struct {
	inventory services.InventoryService
}

func NewInventoryController(inventory services.InventoryService) *InventoryController {
	return &InventoryController{inventory: inventory}
}

// Summary handles GET /api/admin/inventory?q=&category=.
func (ic *InventoryController) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, ic.inventory.Summary(c.Request.Context(), c.Query("q"), c.Query("category")))
}

func (ic *InventoryController) Create(c *gin.Context) {
	var req models.InventoryRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := ic.inventory.Add(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (ic *InventoryController) Update(c *gin.Context) {
	var req models.InventoryRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := ic.inventory.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (ic *InventoryController) Delete(c *gin.Context) {
	if err := ic.inventory.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}
