package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nestnic/taskflow/db"
	"github.com/nestnic/taskflow/internal/authz"
	"github.com/nestnic/taskflow/internal/models"
	"github.com/nestnic/taskflow/internal/types"
	"github.com/nestnic/taskflow/internal/utils"
	"gorm.io/gorm"
)

type CreateTaskRequest struct {
	Title      string     `json:"title" binding:"required"`
	AssigneeID *uint      `json:"assignee_id"`
	DueDate    *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title      string           `json:"title"`
	Status     types.TaskStatus `json:"status"`
	AssigneeID *uint            `json:"assignee_id"`
	DueDate    *time.Time       `json:"due_date"`
}

type TaskResponse struct {
	ID         uint             `json:"id"`
	ProjectID  uint             `json:"project_id"`
	Title      string           `json:"title"`
	Status     types.TaskStatus `json:"status"`
	AssigneeID *uint            `json:"assignee_id,omitempty"`
	DueDate    *time.Time       `json:"due_date,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

func taskResponse(task *models.Task) TaskResponse {
	return TaskResponse{
		ID:         task.ID,
		ProjectID:  task.ProjectID,
		Title:      task.Title,
		Status:     types.TaskStatus(task.Status),
		AssigneeID: task.AssigneeID,
		DueDate:    task.DueDate,
		CreatedAt:  task.CreatedAt,
	}
}

// CreateTask inserts a task in the To Do column. New tasks always
// start at the head of the board order.
func CreateTask(ctx *gin.Context) {
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

	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Task title is required"})
		return
	}

	project, role, ok := loadProjectWithRole(ctx, projectID, userID)

	if !ok {
		return
	}

	if !authz.CanManageTasks(role) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Viewers cannot create tasks"})
		return
	}

	task := models.Task{
		ProjectID:  project.ID,
		Title:      body.Title,
		Status:     string(types.StatusTodo),
		AssigneeID: body.AssigneeID,
		DueDate:    body.DueDate,
	}

	if err := db.DB.Create(&task).Error; err != nil {
		log.Printf("Failed to create task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	BroadcastRefresh(project.PublicID)
	ctx.JSON(http.StatusCreated, taskResponse(&task))
}

func ListTasks(ctx *gin.Context) {
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

	var tasks []models.Task

	if err := db.DB.Where("project_id = ?", project.ID).Order("created_at ASC").Find(&tasks).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, 0, len(tasks))

	for i := range tasks {
		response = append(response, taskResponse(&tasks[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateTask sets any combination of title, status, assignee and due
// date. A direct status write may land on any valid column; the
// one-step transition rule lives in the board client, not here.
func UpdateTask(ctx *gin.Context) {
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

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Status != "" && !types.ValidTaskStatus(body.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task status"})
		return
	}

	project, role, ok := loadProjectWithRole(ctx, projectID, userID)

	if !ok {
		return
	}

	if !authz.CanManageTasks(role) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Viewers cannot update tasks"})
		return
	}

	var task models.Task

	if err := db.DB.Where("id = ? AND project_id = ?", taskID, project.ID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	updates := make(map[string]interface{})

	if body.Title != "" {
		updates["title"] = body.Title
	}

	if body.Status != "" {
		updates["status"] = string(body.Status)
	}

	if body.AssigneeID != nil {
		updates["assignee_id"] = body.AssigneeID
	}

	if body.DueDate != nil {
		updates["due_date"] = body.DueDate
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&task).Updates(updates).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	if err := db.DB.First(&task, task.ID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	BroadcastRefresh(project.PublicID)
	ctx.JSON(http.StatusOK, taskResponse(&task))
}

// DeleteTask removes a task outright. There is no archive or undo;
// completed tasks go through the same path.
func DeleteTask(ctx *gin.Context) {
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

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, role, ok := loadProjectWithRole(ctx, projectID, userID)

	if !ok {
		return
	}

	if !authz.CanManageTasks(role) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Viewers cannot delete tasks"})
		return
	}

	result := db.DB.Where("id = ? AND project_id = ?", taskID, project.ID).Delete(&models.Task{})

	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	BroadcastRefresh(project.PublicID)
	ctx.Status(http.StatusNoContent)
}
