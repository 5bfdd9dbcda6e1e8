package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
)

func TestCreateTaskValidation(t *testing.T) {
	r, conn := setupRouter(t)
	alice := createTestUser(t, conn, "Alice", "alice@example.com")

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
		wantErr    string
	}{
		{
			name:       "missing title",
			body:       map[string]interface{}{"priority": "HIGH", "status": "TODO"},
			wantStatus: http.StatusBadRequest,
			wantErr:    "Title is required",
		},
		{
			name:       "invalid priority",
			body:       map[string]interface{}{"title": "Fix bug", "priority": "EXTREME", "status": "TODO"},
			wantStatus: http.StatusBadRequest,
			wantErr:    "Invalid priority value",
		},
		{
			name:       "invalid status",
			body:       map[string]interface{}{"title": "Fix bug", "priority": "HIGH", "status": "BOGUS"},
			wantStatus: http.StatusBadRequest,
			wantErr:    "Invalid status value",
		},
		{
			name:       "empty enums are invalid",
			body:       map[string]interface{}{"title": "Fix bug"},
			wantStatus: http.StatusBadRequest,
			wantErr:    "Invalid priority value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/api/tasks", tokenFor(t, alice), tt.body)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantErr, decodeBody(t, w)["error"])
		})
	}

	// Failed validation must not have created a default project.
	var count int64
	require.NoError(t, conn.Model(&models.Project{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateTaskDefaultProject(t *testing.T) {
	r, conn := setupRouter(t)
	alice := createTestUser(t, conn, "Alice", "alice@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/tasks", tokenFor(t, alice), map[string]interface{}{
		"title": "Fix bug", "priority": "URGENT", "status": "TODO",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	task := decodeBody(t, w)
	project := task["project"].(map[string]interface{})
	assert.Equal(t, store.DefaultProjectName, project["name"])

	creator := task["createdBy"].(map[string]interface{})
	assert.Equal(t, alice.ID, creator["id"])

	// A second project-less task reuses the same default project.
	w = doRequest(t, r, http.MethodPost, "/api/tasks", tokenFor(t, alice), map[string]interface{}{
		"title": "Write docs", "priority": "LOW", "status": "TODO",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	err := conn.Model(&models.Project{}).
		Where("name = ? AND created_by_id = ?", store.DefaultProjectName, alice.ID).
		Count(&count).Error
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCreateTaskWithAssignees(t *testing.T) {
	r, conn := setupRouter(t)
	alice := createTestUser(t, conn, "Alice", "alice@example.com")
	bob := createTestUser(t, conn, "Bob", "bob@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/tasks", tokenFor(t, alice), map[string]interface{}{
		"title":       "Fix bug",
		"priority":    "HIGH",
		"status":      "TODO",
		"assigneeIds": []string{bob.ID},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	assignees := decodeBody(t, w)["assignees"].([]interface{})
	require.Len(t, assignees, 1)
	assert.Equal(t, bob.ID, assignees[0].(map[string]interface{})["id"])
}

func TestUpdateTask(t *testing.T) {
	r, conn := setupRouter(t)
	alice := createTestUser(t, conn, "Alice", "alice@example.com")
	bob := createTestUser(t, conn, "Bob", "bob@example.com")
	carol := createTestUser(t, conn, "Carol", "carol@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/tasks", tokenFor(t, alice), map[string]interface{}{
		"title": "Fix bug", "priority": "HIGH", "status": "TODO", "assigneeIds": []string{bob.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := decodeBody(t, w)["id"].(string)

	t.Run("creator updates status", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPatch, "/api/tasks/"+taskID, tokenFor(t, alice), map[string]interface{}{
			"status": "IN_PROGRESS",
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "IN_PROGRESS", decodeBody(t, w)["status"])
	})

	t.Run("assignee updates status", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPatch, "/api/tasks/"+taskID, tokenFor(t, bob), map[string]interface{}{
			"status": "REVIEW",
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "REVIEW", decodeBody(t, w)["status"])
	})

	t.Run("transitions are unconstrained", func(t *testing.T) {
		// COMPLETED straight back to TODO is allowed.
		w := doRequest(t, r, http.MethodPatch, "/api/tasks/"+taskID, tokenFor(t, alice), map[string]interface{}{
			"status": "COMPLETED",
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, r, http.MethodPatch, "/api/tasks/"+taskID, tokenFor(t, alice), map[string]interface{}{
			"status": "TODO",
		})
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid status", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPatch, "/api/tasks/"+taskID, tokenFor(t, alice), map[string]interface{}{
			"status": "BOGUS",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid status value", decodeBody(t, w)["error"])
	})

	t.Run("outsider reads not found", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPatch, "/api/tasks/"+taskID, tokenFor(t, carol), map[string]interface{}{
			"status": "COMPLETED",
		})

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Task not found", decodeBody(t, w)["error"])
	})
}

func TestDeleteTask(t *testing.T) {
	r, conn := setupRouter(t)
	alice := createTestUser(t, conn, "Alice", "alice@example.com")
	carol := createTestUser(t, conn, "Carol", "carol@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/tasks", tokenFor(t, alice), map[string]interface{}{
		"title": "Fix bug", "priority": "HIGH", "status": "TODO",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := decodeBody(t, w)["id"].(string)

	t.Run("outsider reads not found", func(t *testing.T) {
		w := doRequest(t, r, http.MethodDelete, "/api/tasks/"+taskID, tokenFor(t, carol), nil)

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("creator deletes", func(t *testing.T) {
		w := doRequest(t, r, http.MethodDelete, "/api/tasks/"+taskID, tokenFor(t, alice), nil)

		require.Equal(t, http.StatusNoContent, w.Code)

		var count int64
		require.NoError(t, conn.Model(&models.Task{}).Where("id = ?", taskID).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestListTasks(t *testing.T) {
	r, conn := setupRouter(t)
	alice := createTestUser(t, conn, "Alice", "alice@example.com")
	bob := createTestUser(t, conn, "Bob", "bob@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/tasks", tokenFor(t, alice), map[string]interface{}{
		"title": "Fix bug", "priority": "HIGH", "status": "TODO", "assigneeIds": []string{bob.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/tasks", tokenFor(t, bob), map[string]interface{}{
		"title": "Own task", "priority": "LOW", "status": "TODO",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("assigned and created tasks are listed", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/tasks", tokenFor(t, bob), nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeList(t, w), 2)
	})

	t.Run("creator only sees own", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/tasks", tokenFor(t, alice), nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeList(t, w), 1)
	})
}
