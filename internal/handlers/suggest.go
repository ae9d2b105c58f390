package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nestnic/taskflow/db"
	"github.com/nestnic/taskflow/internal/models"
	"github.com/nestnic/taskflow/internal/suggest"
	"github.com/nestnic/taskflow/internal/utils"
)

var suggestClient *suggest.Client

// InitSuggestClient wires the AI collaborator. Suggestion routes fail
// soft when it is absent; the rest of the board is unaffected.
func InitSuggestClient(client *suggest.Client) {
	suggestClient = client
}

// SuggestTasks asks the AI collaborator for subtask titles based on
// the project description and what is already on the board.
func SuggestTasks(ctx *gin.Context) {
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

	if suggestClient == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI suggestions are not configured"})
		return
	}

	var tasks []models.Task

	if err := db.DB.Select("title").Where("project_id = ?", project.ID).Find(&tasks).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	titles := make([]string, 0, len(tasks))

	for _, t := range tasks {
		titles = append(titles, t.Title)
	}

	suggestions, err := suggestClient.SuggestSubtasks(ctx.Request.Context(), project.Description, titles)

	if err != nil {
		log.Printf("Suggestion request failed for project %d: %v", project.ID, err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get AI suggestions"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
