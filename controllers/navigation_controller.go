package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/guards"
	"github.com/tebele-dev/tailor-made-couture/middleware"
)

// Navigate handles GET /api/navigation?path=. It reports the view a path
// resolves to and whether the caller may open it.
func Navigate(c *gin.Context) {
	c.JSON(http.StatusOK, guards.Navigate(c.Query("path"), middleware.CurrentUser(c)))
}

// RouteTable handles GET /api/navigation/routes.
func RouteTable(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"routes": guards.Routes()})
}
