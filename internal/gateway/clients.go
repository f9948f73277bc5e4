package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/iudanet/crmsync/internal/crm"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/pkg/api"
)

// ClientGateway работает с ресурсом clients CRM API
type ClientGateway struct {
	restGateway
}

// NewClientGateway создает gateway семейства clients
func NewClientGateway(client *crm.Client) *ClientGateway {
	g := &ClientGateway{}
	g.client = client
	g.family = models.FamilyClients
	g.codec = clientCodec{}
	return g
}

// clientCodec маппит wire-форму api.Client на локальную models.Client
type clientCodec struct{}

func (clientCodec) fromWire(raw []byte) (*models.Entity, error) {
	var w api.Client
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal client: %w", err)
	}

	local := models.Client{
		ID:      w.ID,
		Name:    w.Company,
		Email:   w.Email,
		Phone:   w.Phone,
		Website: w.Website,
	}
	payload, err := json.Marshal(local)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal client payload: %w", err)
	}

	return &models.Entity{
		ID:        w.ID,
		Family:    models.FamilyClients,
		Payload:   payload,
		UpdatedAt: w.UpdatedAt,
		Deleted:   w.Archived,
	}, nil
}

func (clientCodec) toWire(entity *models.Entity) (any, error) {
	var local models.Client
	if err := json.Unmarshal(entity.Payload, &local); err != nil {
		return nil, fmt.Errorf("failed to unmarshal client payload: %w", err)
	}

	return api.Client{
		ID:        entity.ID,
		Company:   local.Name,
		Email:     local.Email,
		Phone:     local.Phone,
		Website:   local.Website,
		UpdatedAt: entity.UpdatedAt,
		Archived:  entity.Deleted,
	}, nil
}
