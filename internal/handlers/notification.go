package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nestnic/taskflow/db"
	"github.com/nestnic/taskflow/internal/models"
	"github.com/nestnic/taskflow/internal/retention"
	"github.com/nestnic/taskflow/internal/utils"
)

type NotificationResponse struct {
	ID          uint      `json:"id"`
	ProjectID   uint      `json:"project_id"`
	ProjectName string    `json:"project_name"`
	SenderID    uint      `json:"sender_id"`
	SenderName  string    `json:"sender_name"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

type MarkReadRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// ListNotifications returns the caller's notifications within the
// retention window, newest first. The sweeper runs hourly, so anything
// past the cutoff is filtered here too.
func ListNotifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	cutoff := time.Now().Add(-retention.NotificationTTL)

	var notifications []models.Notification

	err = db.DB.Where("user_id = ? AND created_at >= ?", userID, cutoff).
		Order("created_at DESC").Find(&notifications).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	response := make([]NotificationResponse, 0, len(notifications))

	for _, n := range notifications {
		response = append(response, NotificationResponse{
			ID:          n.ID,
			ProjectID:   n.ProjectID,
			ProjectName: n.ProjectName,
			SenderID:    n.SenderID,
			SenderName:  n.SenderName,
			Message:     n.Message,
			IsRead:      n.IsRead,
			CreatedAt:   n.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// MarkNotificationsRead flips is_read for the given ids, scoped to the
// caller. Ids belonging to other users are silently skipped.
func MarkNotificationsRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body MarkReadRequest

	if err := ctx.BindJSON(&body); err != nil || len(body.IDs) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Notification ids are required"})
		return
	}

	result := db.DB.Model(&models.Notification{}).
		Where("id IN ? AND user_id = ?", body.IDs, userID).
		Update("is_read", true)

	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"updated": result.RowsAffected})
}
