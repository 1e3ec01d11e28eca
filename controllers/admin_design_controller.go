package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
)

// AdminDesignController edits product blueprints through per-admin drafts.
type AdminDesignController struct {
	designs services.AdminDesignService
}

func NewAdminDesignController(designs services.AdminDesignService) *AdminDesignController {
	return &AdminDesignController{designs: designs}
}

func (dc *AdminDesignController) respond(c *gin.Context, draft *models.DesignDraft, err error) {
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (dc *AdminDesignController) Blueprints(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"blueprints": dc.designs.Blueprints(c.Request.Context())})
}

// Draft handles GET /api/admin/designs/:productId, opening a draft on first use.
func (dc *AdminDesignController) Draft(c *gin.Context) {
	draft, err := dc.designs.Draft(c.Request.Context(), account(c), c.Param("productId"))
	dc.respond(c, draft, err)
}

func (dc *AdminDesignController) AddMeasurement(c *gin.Context) {
	var req models.MeasurementRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := dc.designs.AddMeasurement(c.Request.Context(), account(c), c.Param("productId"), req.Name)
	dc.respond(c, draft, err)
}

func (dc *AdminDesignController) RemoveMeasurement(c *gin.Context) {
	draft, err := dc.designs.RemoveMeasurement(c.Request.Context(), account(c), c.Param("productId"), c.Param("name"))
	dc.respond(c, draft, err)
}

func (dc *AdminDesignController) AddCustomProperty(c *gin.Context) {
	var req models.CustomPropertyRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := dc.designs.AddCustomProperty(c.Request.Context(), account(c), c.Param("productId"), req)
	dc.respond(c, draft, err)
}

func (dc *AdminDesignController) RemoveCustomProperty(c *gin.Context) {
	draft, err := dc.designs.RemoveCustomProperty(c.Request.Context(), account(c), c.Param("productId"), c.Param("propertyId"))
	dc.respond(c, draft, err)
}

func (dc *AdminDesignController) AddPropertyOption(c *gin.Context) {
	var req models.PropertyOptionRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := dc.designs.AddPropertyOption(c.Request.Context(), account(c), c.Param("productId"), c.Param("propertyId"), req.Option)
	dc.respond(c, draft, err)
}

func (dc *AdminDesignController) RemovePropertyOption(c *gin.Context) {
	draft, err := dc.designs.RemovePropertyOption(c.Request.Context(), account(c), c.Param("productId"), c.Param("propertyId"), c.Param("option"))
	dc.respond(c, draft, err)
}

func (dc *AdminDesignController) AddFabricOption(c *gin.Context) {
	var req models.FabricOptionRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := dc.designs.AddFabricOption(c.Request.Context(), account(c), c.Param("productId"), req)
	dc.respond(c, draft, err)
}

func (dc *AdminDesignController) RemoveFabricOption(c *gin.Context) {
	draft, err := dc.designs.RemoveFabricOption(c.Request.Context(), account(c), c.Param("productId"), c.Param("fabricId"))
	dc.respond(c, draft, err)
}

// Commit handles POST /api/admin/designs/:productId/commit.
func (dc *AdminDesignController) Commit(c *gin.Context) {
	product, err := dc.designs.Commit(c.Request.Context(), account(c), c.Param("productId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (dc *AdminDesignController) Discard(c *gin.Context) {
	dc.designs.Discard(c.Request.Context(), account(c), c.Param("productId"))
	c.Status(http.StatusNoContent)
}
