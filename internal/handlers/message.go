package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nestnic/taskflow/db"
	"github.com/nestnic/taskflow/internal/authz"
	"github.com/nestnic/taskflow/internal/models"
	"github.com/nestnic/taskflow/internal/utils"
	"gorm.io/gorm"
)

type CreateMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

type MessageResponse struct {
	ID        uint      `json:"id"`
	ProjectID uint      `json:"project_id"`
	UserID    uint      `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func messageResponse(message *models.Message) MessageResponse {
	return MessageResponse{
		ID:        message.ID,
		ProjectID: message.ProjectID,
		UserID:    message.UserID,
		Text:      message.Text,
		CreatedAt: message.CreatedAt,
	}
}

// ListMessages returns the project's chat log in creation order. The
// client polls this every few seconds.
func ListMessages(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, _, ok := loadProjectWithRole(ctx, projectID, userID)

	if !ok {
		return
	}

	var messages []models.Message

	if err := db.DB.Where("project_id = ?", project.ID).Order("created_at ASC").Find(&messages).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	response := make([]MessageResponse, 0, len(messages))

	for i := range messages {
		response = append(response, messageResponse(&messages[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateMessage appends to the chat and fans one notification out to
// every other member, denormalizing project and sender names so the
// popover renders without joins.
func CreateMessage(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateMessageRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		return
	}

	text := strings.TrimSpace(body.Text)

	if text == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		return
	}

	project, _, ok := loadProjectWithRole(ctx, projectID, currentUser.ID)

	if !ok {
		return
	}

	message := models.Message{
		ProjectID: project.ID,
		UserID:    currentUser.ID,
		Text:      text,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}

		notifications := fanOutNotifications(project, currentUser.ID, currentUser.Name, text)

		if len(notifications) == 0 {
			return nil
		}

		return tx.Create(&notifications).Error
	})

	if err != nil {
		log.Printf("Failed to create message: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	BroadcastRefresh(project.PublicID)
	ctx.JSON(http.StatusCreated, messageResponse(&message))
}

// fanOutNotifications builds one notification per member except the
// sender: the owner plus every collaborator.
func fanOutNotifications(project *models.Project, senderID uint, senderName, text string) []models.Notification {
	recipients := make([]uint, 0, len(project.Collaborators)+1)

	if project.OwnerID != senderID {
		recipients = append(recipients, project.OwnerID)
	}

	for _, c := range project.Collaborators {
		if c.UserID != senderID {
			recipients = append(recipients, c.UserID)
		}
	}

	notifications := make([]models.Notification, 0, len(recipients))

	for _, recipient := range recipients {
		notifications = append(notifications, models.Notification{
			UserID:      recipient,
			ProjectID:   project.ID,
			ProjectName: project.Name,
			SenderID:    senderID,
			SenderName:  senderName,
			Message:     text,
		})
	}

	return notifications
}

// ClearChat deletes the project's entire message log, owner only.
func ClearChat(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, role, ok := loadProjectWithRole(ctx, projectID, userID)

	if !ok {
		return
	}

	if !authz.CanManageProject(role) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can clear the chat"})
		return
	}

	if err := db.DB.Where("project_id = ?", project.ID).Delete(&models.Message{}).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear chat"})
		return
	}

	BroadcastRefresh(project.PublicID)
	ctx.JSON(http.StatusOK, gin.H{"message": "Chat cleared"})
}
