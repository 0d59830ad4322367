package handlers

import (
	"net/http"

	"carriertalk/internal/middleware"
	"carriertalk/internal/models"
	"carriertalk/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// List returns the viewer's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var notifications []models.Notification
	if err := h.db.Preload("Actor").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to load notifications")
		return
	}

	var unread int64
	h.db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", user.ID, false).Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread":        unread,
	})
}

// Read marks one notification as read.
func (h *NotificationHandler) Read(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	result := h.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Update("is_read", true)
	if result.Error != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update notification")
		return
	}
	if result.RowsAffected == 0 {
		JSONError(c, http.StatusNotFound, "no such notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ReadAll marks every notification of the viewer as read.
func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
