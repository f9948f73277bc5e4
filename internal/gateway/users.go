package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/iudanet/crmsync/internal/crm"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/pkg/api"
)

// UserGateway работает с ресурсом users CRM API
type UserGateway struct {
	restGateway
}

// NewUserGateway создает gateway семейства users
func NewUserGateway(client *crm.Client) *UserGateway {
	g := &UserGateway{}
	g.client = client
	g.family = models.FamilyUsers
	g.codec = userCodec{}
	return g
}

// userCodec маппит wire-форму api.User на локальную models.User
type userCodec struct{}

func (userCodec) fromWire(raw []byte) (*models.Entity, error) {
	var w api.User
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	local := models.User{
		ID:     w.ID,
		Email:  w.Email,
		Name:   w.FullName,
		Role:   w.Role,
		Active: w.Active,
	}
	payload, err := json.Marshal(local)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user payload: %w", err)
	}

	return &models.Entity{
		ID:        w.ID,
		Family:    models.FamilyUsers,
		Payload:   payload,
		UpdatedAt: w.UpdatedAt,
		// CRM не архивирует пользователей, деактивация хранится в payload
		Deleted: false,
	}, nil
}

func (userCodec) toWire(entity *models.Entity) (any, error) {
	var local models.User
	if err := json.Unmarshal(entity.Payload, &local); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user payload: %w", err)
	}

	return api.User{
		ID:        entity.ID,
		Email:     local.Email,
		FullName:  local.Name,
		Role:      local.Role,
		Active:    local.Active,
		UpdatedAt: entity.UpdatedAt,
	}, nil
}
