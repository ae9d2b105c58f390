package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nestnic/taskflow/db"
	"github.com/nestnic/taskflow/internal/models"
	"github.com/nestnic/taskflow/internal/retention"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotifications(t *testing.T, r *gin.Engine) (owner *http.Cookie, member *http.Cookie, projectID uint) {
	t.Helper()

	owner, _ = registerUser(t, r, "Olive", "olive@example.com")
	var memberID uint
	member, memberID = registerUser(t, r, "Xavier", "xavier@example.com")

	projectID, _ = createProject(t, r, owner, "Chatty")
	inviteMember(t, r, owner, projectID, memberID, "editor")

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/messages", projectID),
		gin.H{"text": "ping"}, member)
	require.Equal(t, http.StatusCreated, w.Code)

	return owner, member, projectID
}

func TestListNotifications(t *testing.T) {
	r := setupServer(t)
	owner, member, _ := seedNotifications(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/notifications", nil, owner)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chatty")
	assert.Contains(t, w.Body.String(), "Xavier")

	// The sender got nothing.
	w = doJSON(t, r, http.MethodGet, "/api/notifications", nil, member)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestMarkNotificationsReadScopedToCaller(t *testing.T) {
	r := setupServer(t)
	_, member, _ := seedNotifications(t, r)

	var n models.Notification
	require.NoError(t, db.DB.First(&n).Error)

	// The sender cannot mark the owner's notification.
	w := doJSON(t, r, http.MethodPost, "/api/notifications/read", gin.H{"ids": []uint{n.ID}}, member)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["updated"])

	require.NoError(t, db.DB.First(&n, n.ID).Error)
	assert.False(t, n.IsRead)
}

func TestMarkNotificationsReadBatch(t *testing.T) {
	r := setupServer(t)
	owner, _, _ := seedNotifications(t, r)

	var ids []uint
	require.NoError(t, db.DB.Model(&models.Notification{}).Pluck("id", &ids).Error)
	require.NotEmpty(t, ids)

	w := doJSON(t, r, http.MethodPost, "/api/notifications/read", gin.H{"ids": ids}, owner)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(len(ids)), decodeBody(t, w)["updated"])

	var unread int64
	require.NoError(t, db.DB.Model(&models.Notification{}).Where("is_read = ?", false).Count(&unread).Error)
	assert.Zero(t, unread)
}

func TestExpiredNotificationsAreHiddenAndSwept(t *testing.T) {
	r := setupServer(t)
	owner, _, _ := seedNotifications(t, r)

	// Age the row past the retention window.
	stale := time.Now().Add(-retention.NotificationTTL - time.Hour)
	require.NoError(t, db.DB.Model(&models.Notification{}).
		Where("1 = 1").Update("created_at", stale).Error)

	w := doJSON(t, r, http.MethodGet, "/api/notifications", nil, owner)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	require.NoError(t, retention.SweepExpired())

	var count int64
	require.NoError(t, db.DB.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}
