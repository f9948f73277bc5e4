package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/iudanet/crmsync/internal/crm"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/pkg/api"
)

// ProjectGateway работает с ресурсом projects CRM API
type ProjectGateway struct {
	restGateway
}

// NewProjectGateway создает gateway семейства projects
func NewProjectGateway(client *crm.Client) *ProjectGateway {
	g := &ProjectGateway{}
	g.client = client
	g.family = models.FamilyProjects
	g.codec = projectCodec{}
	return g
}

// projectCodec маппит wire-форму api.Project на локальную models.Project
type projectCodec struct{}

func (projectCodec) fromWire(raw []byte) (*models.Entity, error) {
	var w api.Project
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}

	local := models.Project{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Status:      w.State,
		ClientID:    w.ClientID,
		OwnerID:     w.OwnerID,
	}
	payload, err := json.Marshal(local)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project payload: %w", err)
	}

	return &models.Entity{
		ID:        w.ID,
		Family:    models.FamilyProjects,
		Payload:   payload,
		UpdatedAt: w.UpdatedAt,
		Deleted:   w.Archived,
	}, nil
}

func (projectCodec) toWire(entity *models.Entity) (any, error) {
	var local models.Project
	if err := json.Unmarshal(entity.Payload, &local); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project payload: %w", err)
	}

	return api.Project{
		ID:          entity.ID,
		Name:        local.Name,
		Description: local.Description,
		State:       local.Status,
		ClientID:    local.ClientID,
		OwnerID:     local.OwnerID,
		UpdatedAt:   entity.UpdatedAt,
		Archived:    entity.Deleted,
	}, nil
}
