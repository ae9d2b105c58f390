package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nestnic/taskflow/db"
	"github.com/nestnic/taskflow/internal/models"
	"github.com/nestnic/taskflow/internal/types"
)

// ListUsers backs the assignee and invite pickers. Password hashes
// never leave the server.
func ListUsers(ctx *gin.Context) {
	var users []models.User

	if err := db.DB.Select("id, name, email, avatar_url").Find(&users).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, types.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			AvatarURL: user.AvatarURL,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
