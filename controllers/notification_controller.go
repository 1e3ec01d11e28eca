package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
)

// NotificationController lists and dismisses the caller's notifications.
type NotificationController struct {
	notifications services.NotifierProvider
}

func NewNotificationController(notifications services.NotifierProvider) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// List handles GET /api/notifications?type=.
func (nc *NotificationController) List(c *gin.Context) {
	n := nc.notifications.For(account(c))
	items := n.List()
	if t := c.Query("type"); t != "" {
		items = n.ByType(models.NotificationType(t))
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"count":         n.Count(),
		"has_errors":    n.HasErrors(),
	})
}

func (nc *NotificationController) Dismiss(c *gin.Context) {
	nc.notifications.For(account(c)).Remove(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (nc *NotificationController) Clear(c *gin.Context) {
	nc.notifications.For(account(c)).Clear()
	c.Status(http.StatusNoContent)
}
