package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetProjectID(ctx *gin.Context) (uint, error) {
	return pathID(ctx, "project_id", "Project")
}

func GetTaskID(ctx *gin.Context) (uint, error) {
	return pathID(ctx, "task_id", "Task")
}

func GetUserID(ctx *gin.Context) (uint, error) {
	return pathID(ctx, "user_id", "User")
}

func pathID(ctx *gin.Context, param, label string) (uint, error) {
	raw := ctx.Param(param)

	if raw == "" {
		return 0, errors.New(label + " ID not found")
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + label + " ID")
	}

	return uint(id), nil
}
