package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/nestnic/taskflow/db"
	"github.com/nestnic/taskflow/internal/authz"
	"github.com/nestnic/taskflow/internal/middleware"
	"github.com/nestnic/taskflow/internal/models"
	"github.com/nestnic/taskflow/internal/types"
	"gorm.io/gorm"
)

var (
	Domain = os.Getenv("DOMAIN")
)

// loadProjectWithRole fetches a project with its membership rows and
// resolves the caller's role. Access denial is indistinguishable from
// a missing project: non-participants get the same 404 so project ids
// leak nothing.
func loadProjectWithRole(ctx *gin.Context, projectID, userID uint) (*models.Project, types.Role, bool) {
	var project models.Project

	err := db.DB.Preload("Collaborators").Preload("JoinRequests").
		Where("id = ?", projectID).First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return nil, types.RoleNone, false
	}

	role := authz.ResolveRole(&project, userID)

	if !authz.IsParticipant(role) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return nil, types.RoleNone, false
	}

	return &project, role, true
}

func setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   Domain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}
