// Package validation проверяет payload сущностей перед применением.
// Невалидный payload дает фатальную ошибку применения для одной сущности,
// не прерывая batch.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/iudanet/crmsync/internal/models"
)

// EmailPattern определяет минимально допустимый формат email
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Допустимые значения перечислимых полей
var (
	projectStatuses = map[string]bool{"active": true, "archived": true, "completed": true}
	taskStatuses    = map[string]bool{"todo": true, "in_progress": true, "done": true}
	taskPriorities  = map[string]bool{"low": true, "medium": true, "high": true, "urgent": true}
)

// ValidateEntity проверяет payload сущности в локальной форме
func ValidateEntity(entity *models.Entity) error {
	if entity.ID == "" {
		return fmt.Errorf("entity id cannot be empty")
	}
	if entity.Deleted {
		// для soft delete payload не проверяется
		return nil
	}
	if len(entity.Payload) == 0 {
		return fmt.Errorf("entity payload cannot be empty")
	}

	switch entity.Family {
	case models.FamilyProjects:
		return validateProject(entity.Payload)
	case models.FamilyTasks:
		return validateTask(entity.Payload)
	case models.FamilyUsers:
		return validateUser(entity.Payload)
	case models.FamilyClients:
		return validateClient(entity.Payload)
	case models.FamilyComments:
		return validateComment(entity.Payload)
	}
	return fmt.Errorf("unknown entity family: %q", entity.Family)
}

func validateProject(payload json.RawMessage) error {
	var p models.Project
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("malformed project payload: %w", err)
	}
	if p.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if p.Status != "" && !projectStatuses[p.Status] {
		return fmt.Errorf("unknown project status: %q", p.Status)
	}
	return nil
}

func validateTask(payload json.RawMessage) error {
	var t models.Task
	if err := json.Unmarshal(payload, &t); err != nil {
		return fmt.Errorf("malformed task payload: %w", err)
	}
	if t.Title == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if t.ProjectID == "" {
		return fmt.Errorf("task project_id cannot be empty")
	}
	if t.Status != "" && !taskStatuses[t.Status] {
		return fmt.Errorf("unknown task status: %q", t.Status)
	}
	if t.Priority != "" && !taskPriorities[t.Priority] {
		return fmt.Errorf("unknown task priority: %q", t.Priority)
	}
	return nil
}

func validateUser(payload json.RawMessage) error {
	var u models.User
	if err := json.Unmarshal(payload, &u); err != nil {
		return fmt.Errorf("malformed user payload: %w", err)
	}
	if u.Email == "" {
		return fmt.Errorf("user email cannot be empty")
	}
	if !EmailPattern.MatchString(u.Email) {
		return fmt.Errorf("invalid user email: %q", u.Email)
	}
	return nil
}

func validateClient(payload json.RawMessage) error {
	var c models.Client
	if err := json.Unmarshal(payload, &c); err != nil {
		return fmt.Errorf("malformed client payload: %w", err)
	}
	if c.Name == "" {
		return fmt.Errorf("client name cannot be empty")
	}
	if c.Email != "" && !EmailPattern.MatchString(c.Email) {
		return fmt.Errorf("invalid client email: %q", c.Email)
	}
	return nil
}

func validateComment(payload json.RawMessage) error {
	var c models.Comment
	if err := json.Unmarshal(payload, &c); err != nil {
		return fmt.Errorf("malformed comment payload: %w", err)
	}
	if c.TaskID == "" {
		return fmt.Errorf("comment task_id cannot be empty")
	}
	if c.Body == "" {
		return fmt.Errorf("comment body cannot be empty")
	}
	return nil
}
