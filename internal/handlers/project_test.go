package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nestnic/taskflow/db"
	"github.com/nestnic/taskflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectRequiresNameAndDescription(t *testing.T) {
	r := setupServer(t)
	cookie, _ := registerUser(t, r, "Olive", "olive@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/projects", gin.H{"name": "No description"}, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProjectHidesExistenceFromNonParticipants(t *testing.T) {
	r := setupServer(t)
	owner, _ := registerUser(t, r, "Olive", "olive@example.com")
	stranger, _ := registerUser(t, r, "Sam", "sam@example.com")

	projectID, _ := createProject(t, r, owner, "Secret Launch")

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", projectID), nil, stranger)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Project not found")
}

// Full collaboration lifecycle: request, approve as editor, work the
// task across the board, delete it when completed.
func TestJoinAndTaskLifecycle(t *testing.T) {
	r := setupServer(t)
	owner, _ := registerUser(t, r, "Olive", "olive@example.com")
	member, memberID := registerUser(t, r, "Xavier", "xavier@example.com")

	projectID, publicID := createProject(t, r, owner, "Launch Plan")

	// Xavier requests to join via the share code.
	w := doJSON(t, r, http.MethodPost, "/api/projects/join", gin.H{"project_id": publicID}, member)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The request is pending on the owner's view.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", projectID), nil, owner)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Len(t, body["join_requests"], 1)

	// Owner approves with the editor role.
	w = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/requests/%d/approve", projectID, memberID),
		gin.H{"role": "editor"}, owner)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body = decodeBody(t, w)
	assert.Empty(t, body["join_requests"])
	collaborators := body["collaborators"].([]interface{})
	require.Len(t, collaborators, 1)
	entry := collaborators[0].(map[string]interface{})
	assert.Equal(t, float64(memberID), entry["user_id"])
	assert.Equal(t, "editor", entry["role"])

	// Xavier creates a task; it lands in To Do.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", projectID),
		gin.H{"title": "Write launch checklist"}, member)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	task := decodeBody(t, w)
	assert.Equal(t, "To Do", task["status"])
	taskID := uint(task["id"].(float64))

	// Three forward steps reach Completed.
	for _, status := range []string{"In Progress", "Pending", "Completed"} {
		w = doJSON(t, r, http.MethodPatch,
			fmt.Sprintf("/api/projects/%d/tasks/%d", projectID, taskID),
			gin.H{"status": status}, member)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, status, decodeBody(t, w)["status"])
	}

	// An editor may delete the completed task.
	w = doJSON(t, r, http.MethodDelete,
		fmt.Sprintf("/api/projects/%d/tasks/%d", projectID, taskID), nil, member)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d/tasks", projectID), nil, member)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestJoinRequestDuplicateReasons(t *testing.T) {
	r := setupServer(t)
	owner, _ := registerUser(t, r, "Olive", "olive@example.com")
	member, memberID := registerUser(t, r, "Xavier", "xavier@example.com")

	projectID, publicID := createProject(t, r, owner, "Launch Plan")

	// The owner cannot request their own project.
	w := doJSON(t, r, http.MethodPost, "/api/projects/join", gin.H{"project_id": publicID}, owner)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "owner of this project")

	// First request succeeds, the second names the pending state.
	w = doJSON(t, r, http.MethodPost, "/api/projects/join", gin.H{"project_id": publicID}, member)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/projects/join", gin.H{"project_id": publicID}, member)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already requested")

	// Once approved, a further request names the membership.
	w = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/requests/%d/approve", projectID, memberID),
		gin.H{"role": "viewer"}, owner)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/projects/join", gin.H{"project_id": publicID}, member)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already a collaborator")
}

func TestDenyJoinRequestLeavesCollaboratorsUnchanged(t *testing.T) {
	r := setupServer(t)
	owner, _ := registerUser(t, r, "Olive", "olive@example.com")
	member, memberID := registerUser(t, r, "Xavier", "xavier@example.com")

	projectID, publicID := createProject(t, r, owner, "Launch Plan")

	w := doJSON(t, r, http.MethodPost, "/api/projects/join", gin.H{"project_id": publicID}, member)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/requests/%d/deny", projectID, memberID), nil, owner)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Empty(t, body["join_requests"])
	assert.Empty(t, body["collaborators"])

	// Denying again reports there is nothing pending.
	w = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/requests/%d/deny", projectID, memberID), nil, owner)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No pending join request")
}

func TestApproveRequiresOwner(t *testing.T) {
	r := setupServer(t)
	owner, _ := registerUser(t, r, "Olive", "olive@example.com")
	editor, editorID := registerUser(t, r, "Eddy", "eddy@example.com")
	requester, requesterID := registerUser(t, r, "Rica", "rica@example.com")

	projectID, publicID := createProject(t, r, owner, "Launch Plan")

	w := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/collaborators", projectID),
		gin.H{"user_id": editorID, "role": "editor"}, owner)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/projects/join", gin.H{"project_id": publicID}, requester)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/requests/%d/approve", projectID, requesterID),
		gin.H{"role": "editor"}, editor)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Only the project owner")
}

func TestInviteCollaboratorRejectsDuplicates(t *testing.T) {
	r := setupServer(t)
	owner, _ := registerUser(t, r, "Olive", "olive@example.com")
	_, memberID := registerUser(t, r, "Xavier", "xavier@example.com")

	projectID, _ := createProject(t, r, owner, "Launch Plan")

	w := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/collaborators", projectID),
		gin.H{"user_id": memberID, "role": "viewer"}, owner)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/collaborators", projectID),
		gin.H{"user_id": memberID, "role": "editor"}, owner)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already a collaborator")
}

func TestDeleteProjectRequiresOwner(t *testing.T) {
	r := setupServer(t)
	owner, _ := registerUser(t, r, "Olive", "olive@example.com")
	member, memberID := registerUser(t, r, "Xavier", "xavier@example.com")

	projectID, _ := createProject(t, r, owner, "Launch Plan")

	w := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/collaborators", projectID),
		gin.H{"user_id": memberID, "role": "editor"}, owner)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/projects/%d", projectID), nil, member)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Only the project owner")

	var count int64
	require.NoError(t, db.DB.Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteProjectCascades(t *testing.T) {
	r := setupServer(t)
	owner, _ := registerUser(t, r, "Olive", "olive@example.com")

	projectID, _ := createProject(t, r, owner, "Launch Plan")

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", projectID),
		gin.H{"title": "Doomed task"}, owner)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/projects/%d", projectID), nil, owner)
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	require.NoError(t, db.DB.Model(&models.Task{}).Where("project_id = ?", projectID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLeaveProject(t *testing.T) {
	r := setupServer(t)
	owner, _ := registerUser(t, r, "Olive", "olive@example.com")
	member, memberID := registerUser(t, r, "Xavier", "xavier@example.com")

	projectID, _ := createProject(t, r, owner, "Launch Plan")

	w := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/collaborators", projectID),
		gin.H{"user_id": memberID, "role": "viewer"}, owner)
	require.Equal(t, http.StatusOK, w.Code)

	// The owner cannot leave their own project.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/leave", projectID), nil, owner)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "delete the project instead")

	// The collaborator can, and loses access afterwards.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/leave", projectID), nil, member)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", projectID), nil, member)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestArchiveAndUnarchive(t *testing.T) {
	r := setupServer(t)
	owner, _ := registerUser(t, r, "Olive", "olive@example.com")

	projectID, _ := createProject(t, r, owner, "Launch Plan")

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/archive", projectID), nil, owner)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["is_archived"])

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/unarchive", projectID), nil, owner)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["is_archived"])
}

func TestListProjectsIncludesCollaborations(t *testing.T) {
	r := setupServer(t)
	owner, _ := registerUser(t, r, "Olive", "olive@example.com")
	member, memberID := registerUser(t, r, "Xavier", "xavier@example.com")

	projectID, _ := createProject(t, r, owner, "Shared Plan")
	createProject(t, r, member, "Xavier's Own")

	w := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/collaborators", projectID),
		gin.H{"user_id": memberID, "role": "editor"}, owner)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/projects", nil, member)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Body.String(), "Shared Plan")
	assert.Contains(t, w.Body.String(), "Xavier's Own")
}
