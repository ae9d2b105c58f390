package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nestnic/taskflow/db"
	"github.com/nestnic/taskflow/internal/authz"
	"github.com/nestnic/taskflow/internal/models"
	"github.com/nestnic/taskflow/internal/types"
	"github.com/nestnic/taskflow/internal/utils"
	"gorm.io/gorm"
)

type JoinProjectRequest struct {
	ProjectID string `json:"project_id" binding:"required"` // Public share code
}

type ApproveRequestBody struct {
	Role types.Role `json:"role" binding:"required"`
}

type InviteCollaboratorRequest struct {
	UserID uint       `json:"user_id" binding:"required"`
	Role   types.Role `json:"role" binding:"required"`
}

type JoinRequesterResponse struct {
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// RequestToJoin files a pending join request against a project's
// public share code. Owners, collaborators and repeat requesters get a
// specific rejection instead of a silent no-op.
func RequestToJoin(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body JoinProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Project ID format"})
		return
	}

	var project models.Project

	err = db.DB.Preload("Collaborators").Preload("JoinRequests").
		Where("public_id = ?", body.ProjectID).First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	switch authz.ResolveRole(&project, userID) {
	case types.RoleAdmin:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "You are the owner of this project"})
		return
	case types.RoleEditor, types.RoleViewer:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "You are already a collaborator on this project"})
		return
	}

	if authz.HasPendingRequest(&project, userID) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "You have already requested to join this project"})
		return
	}

	request := models.JoinRequest{
		UserID:    userID,
		ProjectID: project.ID,
	}

	if err := db.DB.Create(&request).Error; err != nil {
		log.Printf("Failed to create join request: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send join request"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Join request sent"})
}

// ListJoinRequests returns the pending requesters with display fields
// for the owner's review dialog.
func ListJoinRequests(ctx *gin.Context) {
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
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can view join requests"})
		return
	}

	var requests []models.JoinRequest

	if err := db.DB.Preload("User").Where("project_id = ?", project.ID).Find(&requests).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve join requests"})
		return
	}

	response := make([]JoinRequesterResponse, 0, len(requests))

	for _, r := range requests {
		response = append(response, JoinRequesterResponse{
			UserID:    r.UserID,
			Name:      r.User.Name,
			AvatarURL: r.User.AvatarURL,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// ApproveJoinRequest moves one user from the pending set into the
// collaborator set in a single transaction. The role comes from the
// approving owner, never the requester.
func ApproveJoinRequest(ctx *gin.Context) {
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

	targetID, err := utils.GetUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body ApproveRequestBody

	if err := ctx.BindJSON(&body); err != nil || !types.ValidCollaboratorRole(body.Role) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Role must be editor or viewer"})
		return
	}

	project, role, ok := loadProjectWithRole(ctx, projectID, userID)

	if !ok {
		return
	}

	if !authz.CanManageProject(role) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can approve requests"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("project_id = ? AND user_id = ?", project.ID, targetID).Delete(&models.JoinRequest{})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Create(&models.Collaborator{
			UserID:    targetID,
			ProjectID: project.ID,
			Role:      string(body.Role),
		}).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "No pending join request for this user"})
		} else {
			log.Printf("Failed to approve join request: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve join request"})
		}
		return
	}

	refreshed, role, ok := loadProjectWithRole(ctx, projectID, userID)

	if !ok {
		return
	}

	BroadcastRefresh(refreshed.PublicID)
	ctx.JSON(http.StatusOK, projectResponse(refreshed, role))
}

// DenyJoinRequest drops the pending request, leaving collaborators
// untouched.
func DenyJoinRequest(ctx *gin.Context) {
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

	targetID, err := utils.GetUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, role, ok := loadProjectWithRole(ctx, projectID, userID)

	if !ok {
		return
	}

	if !authz.CanManageProject(role) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can deny requests"})
		return
	}

	result := db.DB.Where("project_id = ? AND user_id = ?", project.ID, targetID).Delete(&models.JoinRequest{})

	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deny join request"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No pending join request for this user"})
		return
	}

	refreshed, role, ok := loadProjectWithRole(ctx, projectID, userID)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(refreshed, role))
}

// InviteCollaborator adds a user directly, owner only. Duplicate
// invites are rejected with the specific reason.
func InviteCollaborator(ctx *gin.Context) {
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

	var body InviteCollaboratorRequest

	if err := ctx.BindJSON(&body); err != nil || !types.ValidCollaboratorRole(body.Role) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User ID and a role of editor or viewer are required"})
		return
	}

	project, role, ok := loadProjectWithRole(ctx, projectID, userID)

	if !ok {
		return
	}

	if !authz.CanManageProject(role) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can invite collaborators"})
		return
	}

	if body.UserID == project.OwnerID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "The owner is already a member of this project"})
		return
	}

	if authz.ResolveRole(project, body.UserID) != types.RoleNone {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User is already a collaborator"})
		return
	}

	var target models.User

	if err := db.DB.First(&target, body.UserID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// An invite supersedes any pending request from the same user.
		if err := tx.Where("project_id = ? AND user_id = ?", project.ID, body.UserID).Delete(&models.JoinRequest{}).Error; err != nil {
			return err
		}

		return tx.Create(&models.Collaborator{
			UserID:    body.UserID,
			ProjectID: project.ID,
			Role:      string(body.Role),
		}).Error
	})

	if err != nil {
		log.Printf("Failed to invite collaborator: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invite collaborator"})
		return
	}

	refreshed, role, ok := loadProjectWithRole(ctx, projectID, userID)

	if !ok {
		return
	}

	BroadcastRefresh(refreshed.PublicID)
	ctx.JSON(http.StatusOK, projectResponse(refreshed, role))
}
