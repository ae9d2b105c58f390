package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nestnic/taskflow/db"
	"github.com/nestnic/taskflow/internal/authz"
	"github.com/nestnic/taskflow/internal/models"
	"github.com/nestnic/taskflow/internal/types"
	"github.com/nestnic/taskflow/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type UpdateProjectRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Settings    map[string]interface{} `json:"settings"`
}

type CollaboratorResponse struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

type ProjectResponse struct {
	ID            uint                   `json:"id"`
	PublicID      string                 `json:"public_id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	OwnerID       uint                   `json:"owner_id"`
	IsArchived    bool                   `json:"is_archived"`
	Collaborators []CollaboratorResponse `json:"collaborators"`
	JoinRequests  []uint                 `json:"join_requests"`
	Settings      json.RawMessage        `json:"settings,omitempty"`
	Role          types.Role             `json:"role"`
}

func projectResponse(project *models.Project, role types.Role) ProjectResponse {
	collaborators := make([]CollaboratorResponse, 0, len(project.Collaborators))
	for _, c := range project.Collaborators {
		collaborators = append(collaborators, CollaboratorResponse{UserID: c.UserID, Role: c.Role})
	}

	requests := make([]uint, 0, len(project.JoinRequests))
	for _, r := range project.JoinRequests {
		requests = append(requests, r.UserID)
	}

	return ProjectResponse{
		ID:            project.ID,
		PublicID:      project.PublicID,
		Name:          project.Name,
		Description:   project.Description,
		OwnerID:       project.OwnerID,
		IsArchived:    project.IsArchived,
		Collaborators: collaborators,
		JoinRequests:  requests,
		Settings:      json.RawMessage(project.Settings),
		Role:          role,
	}
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project name and description are required"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project := models.Project{
		PublicID:    uuid.NewString(),
		Name:        body.Name,
		Description: body.Description,
		OwnerID:     userID,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(&project, types.RoleAdmin))
}

// ListProjects returns every project the caller owns or collaborates
// on, each annotated with the caller's resolved role.
func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	err = db.DB.Preload("Collaborators").Preload("JoinRequests").
		Where("owner_id = ? OR id IN (?)", userID,
			db.DB.Model(&models.Collaborator{}).Select("project_id").Where("user_id = ?", userID)).
		Find(&projects).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for i := range projects {
		role := authz.ResolveRole(&projects[i], userID)
		response = append(response, projectResponse(&projects[i], role))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
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

	ctx.JSON(http.StatusOK, projectResponse(project, role))
}

func UpdateProject(ctx *gin.Context) {
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

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, role, ok := loadProjectWithRole(ctx, projectID, userID)

	if !ok {
		return
	}

	if !authz.CanManageProject(role) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can update the project"})
		return
	}

	project.Name = body.Name
	project.Description = body.Description

	if body.Settings != nil {
		settings, err := json.Marshal(body.Settings)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings format"})
			return
		}
		project.Settings = datatypes.JSON(settings)
	}

	if err := db.DB.Save(project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project, role))
}

func ArchiveProject(ctx *gin.Context) {
	setArchived(ctx, true)
}

func UnarchiveProject(ctx *gin.Context) {
	setArchived(ctx, false)
}

func setArchived(ctx *gin.Context, archived bool) {
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
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can archive the project"})
		return
	}

	if err := db.DB.Model(project).Update("is_archived", archived).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	project.IsArchived = archived
	ctx.JSON(http.StatusOK, projectResponse(project, role))
}

func DeleteProject(ctx *gin.Context) {
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
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can delete the project"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		for _, entity := range []interface{}{
			&models.Task{}, &models.Message{}, &models.Notification{},
			&models.Collaborator{}, &models.JoinRequest{},
		} {
			if err := tx.Where("project_id = ?", project.ID).Delete(entity).Error; err != nil {
				return err
			}
		}
		return tx.Delete(project).Error
	})

	if err != nil {
		log.Printf("Failed to delete project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// LeaveProject removes the caller's collaborator row. The owner is
// rejected: ownership is immutable, owners delete instead of leaving.
func LeaveProject(ctx *gin.Context) {
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

	if !authz.CanLeave(role) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "The project owner cannot leave; delete the project instead"})
		return
	}

	if err := db.DB.Where("project_id = ? AND user_id = ?", project.ID, userID).Delete(&models.Collaborator{}).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave project"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Left project successfully"})
}
