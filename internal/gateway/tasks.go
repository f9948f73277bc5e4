package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iudanet/crmsync/internal/crm"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/pkg/api"
)

// TaskGateway работает с ресурсом tasks CRM API
type TaskGateway struct {
	restGateway
}

// NewTaskGateway создает gateway семейства tasks
func NewTaskGateway(client *crm.Client) *TaskGateway {
	g := &TaskGateway{}
	g.client = client
	g.family = models.FamilyTasks
	g.codec = taskCodec{}
	return g
}

// ListByProject возвращает страницу задач указанного проекта
func (g *TaskGateway) ListByProject(ctx context.Context, projectID string, page int) ([]models.Entity, bool, error) {
	return g.listRelated(ctx, "project_id", projectID, page)
}

// Маппинг статусов задач между локальной формой и wire-формой CRM.
// Неизвестные значения проходят без изменений.
var (
	taskStateToLocal = map[string]string{
		"open":   "todo",
		"closed": "done",
	}
	taskStateToWire = map[string]string{
		"todo": "open",
		"done": "closed",
	}
)

func mapTaskState(value string, table map[string]string) string {
	if mapped, ok := table[value]; ok {
		return mapped
	}
	return value
}

// taskCodec маппит wire-форму api.Task на локальную models.Task
type taskCodec struct{}

func (taskCodec) fromWire(raw []byte) (*models.Entity, error) {
	var w api.Task
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}

	local := models.Task{
		ID:          w.ID,
		ProjectID:   w.ProjectID,
		AssigneeID:  w.AssigneeID,
		Title:       w.Subject,
		Description: w.Body,
		Status:      mapTaskState(w.State, taskStateToLocal),
		Priority:    w.Priority,
		DueDate:     w.DueOn,
	}
	payload, err := json.Marshal(local)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task payload: %w", err)
	}

	return &models.Entity{
		ID:        w.ID,
		Family:    models.FamilyTasks,
		Payload:   payload,
		UpdatedAt: w.UpdatedAt,
		Deleted:   w.Archived,
	}, nil
}

func (taskCodec) toWire(entity *models.Entity) (any, error) {
	var local models.Task
	if err := json.Unmarshal(entity.Payload, &local); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	return api.Task{
		ID:         entity.ID,
		ProjectID:  local.ProjectID,
		AssigneeID: local.AssigneeID,
		Subject:    local.Title,
		Body:       local.Description,
		State:      mapTaskState(local.Status, taskStateToWire),
		Priority:   local.Priority,
		DueOn:      local.DueDate,
		UpdatedAt:  entity.UpdatedAt,
		Archived:   entity.Deleted,
	}, nil
}
