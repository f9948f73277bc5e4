package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/crmsync/internal/crm"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/pkg/api"
)

type staticAuth struct{}

func (staticAuth) Authorize(ctx context.Context, req *http.Request) error {
	req.Header.Set("Authorization", "Bearer test-token")
	return nil
}

func (staticAuth) Invalidate() {}

type noLimit struct{}

func (noLimit) Reserve(ctx context.Context) error { return nil }
func (noLimit) Refund()                           {}

func newTestClient(serverURL string) *crm.Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	retry := crm.RetryConfig{MaxAttempts: 1, InitialDelay: time.Millisecond, Multiplier: 2.0}
	return crm.NewClient(serverURL, "v1", staticAuth{}, noLimit{}, retry, 5*time.Second, logger)
}

func listEnvelope(t *testing.T, page, totalPages int, items ...any) []byte {
	t.Helper()
	data := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		require.NoError(t, err)
		data = append(data, raw)
	}
	body, err := json.Marshal(api.ListResponse{
		Data:       data,
		Page:       page,
		PerPage:    100,
		Total:      len(items),
		TotalPages: totalPages,
	})
	require.NoError(t, err)
	return body
}

func TestTaskGatewayList(t *testing.T) {
	updatedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tasks", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "2026-03-01T00:00:00Z", r.URL.Query().Get("updated_since"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		_, _ = w.Write(listEnvelope(t, 1, 2, api.Task{
			ID:        "t-1",
			ProjectID: "p-1",
			Subject:   "Fix login form",
			Body:      "Submit button does nothing",
			State:     "open",
			Priority:  "high",
			UpdatedAt: updatedAt,
		}))
	}))
	defer server.Close()

	gw := NewTaskGateway(newTestClient(server.URL))
	assert.Equal(t, models.FamilyTasks, gw.Family())

	entities, hasMore, err := gw.List(context.Background(), since, 1)
	require.NoError(t, err)
	assert.True(t, hasMore)
	require.Len(t, entities, 1)

	entity := entities[0]
	assert.Equal(t, "t-1", entity.ID)
	assert.Equal(t, models.FamilyTasks, entity.Family)
	assert.Equal(t, updatedAt, entity.UpdatedAt)
	assert.False(t, entity.Deleted)

	var task models.Task
	require.NoError(t, json.Unmarshal(entity.Payload, &task))
	assert.Equal(t, "Fix login form", task.Title)
	assert.Equal(t, "Submit button does nothing", task.Description)
	// Wire-статус open маппится в локальный todo
	assert.Equal(t, "todo", task.Status)
	assert.Equal(t, "high", task.Priority)
}

func TestTaskGatewayListWithoutSince(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["updated_since"]
		assert.False(t, ok, "zero since must not produce updated_since")
		_, _ = w.Write(listEnvelope(t, 1, 1))
	}))
	defer server.Close()

	gw := NewTaskGateway(newTestClient(server.URL))

	entities, hasMore, err := gw.List(context.Background(), time.Time{}, 1)
	require.NoError(t, err)
	assert.False(t, hasMore)
	assert.Empty(t, entities)
}

func TestTaskGatewayUpdateWireMapping(t *testing.T) {
	updatedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	var captured api.Task
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/tasks/t-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
	}))
	defer server.Close()

	payload, err := json.Marshal(models.Task{
		ID:        "t-1",
		ProjectID: "p-1",
		Title:     "Fix login form",
		Status:    "done",
		Priority:  "high",
	})
	require.NoError(t, err)

	gw := NewTaskGateway(newTestClient(server.URL))
	err = gw.Update(context.Background(), "t-1", &models.Entity{
		ID:        "t-1",
		Family:    models.FamilyTasks,
		Payload:   payload,
		UpdatedAt: updatedAt,
	})
	require.NoError(t, err)

	assert.Equal(t, "Fix login form", captured.Subject)
	// Локальный done маппится в wire-статус closed
	assert.Equal(t, "closed", captured.State)
	assert.Equal(t, "p-1", captured.ProjectID)
	assert.Equal(t, updatedAt, captured.UpdatedAt)
}

func TestTaskGatewayStatePassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(listEnvelope(t, 1, 1, api.Task{
			ID:      "t-2",
			Subject: "In flight",
			State:   "in_progress",
		}))
	}))
	defer server.Close()

	gw := NewTaskGateway(newTestClient(server.URL))

	entities, _, err := gw.List(context.Background(), time.Time{}, 1)
	require.NoError(t, err)
	require.Len(t, entities, 1)

	var task models.Task
	require.NoError(t, json.Unmarshal(entities[0].Payload, &task))
	assert.Equal(t, "in_progress", task.Status)
}

func TestTaskGatewayListByProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tasks", r.URL.Path)
		assert.Equal(t, "p-1", r.URL.Query().Get("project_id"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		_, _ = w.Write(listEnvelope(t, 1, 1, api.Task{ID: "t-1", ProjectID: "p-1", Subject: "x", State: "open"}))
	}))
	defer server.Close()

	gw := NewTaskGateway(newTestClient(server.URL))

	entities, hasMore, err := gw.ListByProject(context.Background(), "p-1", 1)
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, entities, 1)
	assert.Equal(t, "t-1", entities[0].ID)
}

func TestCommentGatewayListByTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/comments", r.URL.Path)
		assert.Equal(t, "t-1", r.URL.Query().Get("task_id"))
		_, _ = w.Write(listEnvelope(t, 1, 1, api.Comment{ID: "c-1", TaskID: "t-1", AuthorID: "u-1", Body: "done?"}))
	}))
	defer server.Close()

	gw := NewCommentGateway(newTestClient(server.URL))

	entities, _, err := gw.ListByTask(context.Background(), "t-1", 1)
	require.NoError(t, err)
	require.Len(t, entities, 1)

	var comment models.Comment
	require.NoError(t, json.Unmarshal(entities[0].Payload, &comment))
	assert.Equal(t, "t-1", comment.TaskID)
	assert.Equal(t, "done?", comment.Body)
}

func TestUserGatewayMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/u-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.User{
			ID:       "u-1",
			Email:    "ivan@example.com",
			FullName: "Ivan Petrov",
			Role:     "manager",
			Active:   false,
		})
	}))
	defer server.Close()

	gw := NewUserGateway(newTestClient(server.URL))

	entity, err := gw.Get(context.Background(), "u-1")
	require.NoError(t, err)
	// Деактивация не удаление: флаг живет в payload
	assert.False(t, entity.Deleted)

	var user models.User
	require.NoError(t, json.Unmarshal(entity.Payload, &user))
	assert.Equal(t, "Ivan Petrov", user.Name)
	assert.Equal(t, "ivan@example.com", user.Email)
	assert.False(t, user.Active)
}

func TestProjectGatewayCreate(t *testing.T) {
	var captured api.Project
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/projects", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	payload, err := json.Marshal(models.Project{
		ID:       "p-1",
		Name:     "Website redesign",
		Status:   "active",
		ClientID: "cl-1",
	})
	require.NoError(t, err)

	gw := NewProjectGateway(newTestClient(server.URL))
	err = gw.Create(context.Background(), &models.Entity{
		ID:      "p-1",
		Family:  models.FamilyProjects,
		Payload: payload,
	})
	require.NoError(t, err)

	assert.Equal(t, "Website redesign", captured.Name)
	assert.Equal(t, "active", captured.State)
	assert.Equal(t, "cl-1", captured.ClientID)
}

func TestGatewayDelete(t *testing.T) {
	var deleted bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/clients/cl-1", r.URL.Path)
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	gw := NewClientGateway(newTestClient(server.URL))
	require.NoError(t, gw.Delete(context.Background(), "cl-1"))
	assert.True(t, deleted)
}

func TestForFamily(t *testing.T) {
	client := newTestClient("http://crm.local")

	for _, family := range models.AllFamilies() {
		gw, err := ForFamily(client, family)
		require.NoError(t, err)
		assert.Equal(t, family, gw.Family())
	}

	_, err := ForFamily(client, models.Family("invoices"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no gateway for family")
}
