package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/crmsync/internal/models"
)

func entity(family models.Family, payload string) *models.Entity {
	return &models.Entity{
		ID:        "e-1",
		Family:    family,
		Payload:   []byte(payload),
		UpdatedAt: time.Now(),
	}
}

func TestValidateEntity(t *testing.T) {
	tests := []struct {
		name    string
		family  models.Family
		payload string
		wantErr string
	}{
		{
			name:    "valid project",
			family:  models.FamilyProjects,
			payload: `{"id":"p-1","name":"Website","status":"active"}`,
		},
		{
			name:    "project without name",
			family:  models.FamilyProjects,
			payload: `{"id":"p-1","status":"active"}`,
			wantErr: "project name cannot be empty",
		},
		{
			name:    "project with unknown status",
			family:  models.FamilyProjects,
			payload: `{"id":"p-1","name":"Website","status":"paused"}`,
			wantErr: "unknown project status",
		},
		{
			name:    "project with empty status",
			family:  models.FamilyProjects,
			payload: `{"id":"p-1","name":"Website"}`,
		},
		{
			name:    "valid task",
			family:  models.FamilyTasks,
			payload: `{"id":"t-1","project_id":"p-1","title":"Fix","status":"todo","priority":"high"}`,
		},
		{
			name:    "task without title",
			family:  models.FamilyTasks,
			payload: `{"id":"t-1","project_id":"p-1"}`,
			wantErr: "task title cannot be empty",
		},
		{
			name:    "task without project",
			family:  models.FamilyTasks,
			payload: `{"id":"t-1","title":"Fix"}`,
			wantErr: "task project_id cannot be empty",
		},
		{
			name:    "task with unknown status",
			family:  models.FamilyTasks,
			payload: `{"id":"t-1","project_id":"p-1","title":"Fix","status":"blocked"}`,
			wantErr: "unknown task status",
		},
		{
			name:    "task with unknown priority",
			family:  models.FamilyTasks,
			payload: `{"id":"t-1","project_id":"p-1","title":"Fix","priority":"asap"}`,
			wantErr: "unknown task priority",
		},
		{
			name:    "valid user",
			family:  models.FamilyUsers,
			payload: `{"id":"u-1","email":"ivan@example.com","name":"Ivan"}`,
		},
		{
			name:    "user without email",
			family:  models.FamilyUsers,
			payload: `{"id":"u-1","name":"Ivan"}`,
			wantErr: "user email cannot be empty",
		},
		{
			name:    "user with malformed email",
			family:  models.FamilyUsers,
			payload: `{"id":"u-1","email":"not-an-email"}`,
			wantErr: "invalid user email",
		},
		{
			name:    "valid client",
			family:  models.FamilyClients,
			payload: `{"id":"cl-1","name":"Acme"}`,
		},
		{
			name:    "client without name",
			family:  models.FamilyClients,
			payload: `{"id":"cl-1","email":"sales@acme.com"}`,
			wantErr: "client name cannot be empty",
		},
		{
			name:    "client with malformed email",
			family:  models.FamilyClients,
			payload: `{"id":"cl-1","name":"Acme","email":"acme"}`,
			wantErr: "invalid client email",
		},
		{
			name:    "valid comment",
			family:  models.FamilyComments,
			payload: `{"id":"c-1","task_id":"t-1","author_id":"u-1","body":"done"}`,
		},
		{
			name:    "comment without task",
			family:  models.FamilyComments,
			payload: `{"id":"c-1","body":"done"}`,
			wantErr: "comment task_id cannot be empty",
		},
		{
			name:    "comment without body",
			family:  models.FamilyComments,
			payload: `{"id":"c-1","task_id":"t-1"}`,
			wantErr: "comment body cannot be empty",
		},
		{
			name:    "malformed json",
			family:  models.FamilyTasks,
			payload: `{"id":`,
			wantErr: "malformed task payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntity(entity(tt.family, tt.payload))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateEntityEmptyID(t *testing.T) {
	e := entity(models.FamilyTasks, `{}`)
	e.ID = ""
	err := ValidateEntity(e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entity id cannot be empty")
}

func TestValidateEntityDeletedSkipsPayload(t *testing.T) {
	e := entity(models.FamilyTasks, ``)
	e.Deleted = true
	assert.NoError(t, ValidateEntity(e))
}

func TestValidateEntityUnknownFamily(t *testing.T) {
	err := ValidateEntity(entity(models.Family("invoices"), `{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity family")
}

func TestValidateEntityEmptyPayload(t *testing.T) {
	err := ValidateEntity(entity(models.FamilyTasks, ``))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entity payload cannot be empty")
}
