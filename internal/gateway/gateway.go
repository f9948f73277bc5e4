// Package gateway содержит типизированные построители запросов для каждого
// семейства ресурсов CRM. Gateways выполняют чистый маппинг между локальной
// и wire-формой; повторы и аутентификация остаются в транспортном клиенте.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/iudanet/crmsync/internal/crm"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/pkg/api"
)

//go:generate moq -out gateway_mock.go . Gateway

// defaultPerPage размер страницы постраничных запросов list
const defaultPerPage = 100

// Gateway is the typed per-family surface over the API client
type Gateway interface {
	// Family returns the entity family this gateway serves
	Family() models.Family

	// List returns one page of entities modified strictly after since
	// and reports whether more pages follow
	List(ctx context.Context, since time.Time, page int) ([]models.Entity, bool, error)

	// Get returns a single entity by ID
	Get(ctx context.Context, id string) (*models.Entity, error)

	// Create creates the entity remotely
	Create(ctx context.Context, entity *models.Entity) error

	// Update overwrites the remote entity
	Update(ctx context.Context, id string, entity *models.Entity) error

	// Delete removes the remote entity
	Delete(ctx context.Context, id string) error
}

// codec маппит одну сущность между локальной и wire-формой
type codec interface {
	// fromWire декодирует wire-объект CRM в локальный снимок
	fromWire(raw []byte) (*models.Entity, error)

	// toWire кодирует локальный снимок в wire-объект CRM
	toWire(entity *models.Entity) (any, error)
}

// restGateway общая часть всех gateways: построение путей, пагинация,
// декодирование list-конверта
type restGateway struct {
	client *crm.Client
	codec  codec
	family models.Family
}

func (g *restGateway) Family() models.Family {
	return g.family
}

func (g *restGateway) List(ctx context.Context, since time.Time, page int) ([]models.Entity, bool, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(defaultPerPage))
	if !since.IsZero() {
		query.Set("updated_since", since.UTC().Format(time.RFC3339))
	}

	var resp api.ListResponse
	if err := g.client.Get(ctx, g.client.ResourcePath(string(g.family)), query, &resp); err != nil {
		return nil, false, fmt.Errorf("failed to list %s: %w", g.family, err)
	}

	entities := make([]models.Entity, 0, len(resp.Data))
	for _, raw := range resp.Data {
		entity, err := g.codec.fromWire(raw)
		if err != nil {
			return nil, false, fmt.Errorf("failed to decode %s entity: %w", g.family, err)
		}
		entities = append(entities, *entity)
	}

	return entities, resp.HasMore(), nil
}

func (g *restGateway) Get(ctx context.Context, id string) (*models.Entity, error) {
	var raw json.RawMessage

	path := g.client.ResourcePath(string(g.family)) + "/" + url.PathEscape(id)
	if err := g.client.Get(ctx, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", g.family, id, err)
	}

	entity, err := g.codec.fromWire(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s entity: %w", g.family, err)
	}
	return entity, nil
}

func (g *restGateway) Create(ctx context.Context, entity *models.Entity) error {
	wire, err := g.codec.toWire(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s entity: %w", g.family, err)
	}

	if err := g.client.Post(ctx, g.client.ResourcePath(string(g.family)), wire, nil); err != nil {
		return fmt.Errorf("failed to create %s/%s: %w", g.family, entity.ID, err)
	}
	return nil
}

func (g *restGateway) Update(ctx context.Context, id string, entity *models.Entity) error {
	wire, err := g.codec.toWire(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s entity: %w", g.family, err)
	}

	path := g.client.ResourcePath(string(g.family)) + "/" + url.PathEscape(id)
	if err := g.client.Put(ctx, path, wire, nil); err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", g.family, id, err)
	}
	return nil
}

func (g *restGateway) Delete(ctx context.Context, id string) error {
	path := g.client.ResourcePath(string(g.family)) + "/" + url.PathEscape(id)
	if err := g.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", g.family, id, err)
	}
	return nil
}

// listRelated выполняет family-специфичную выборку связанных сущностей
// (например, задачи проекта) через фильтр query-параметром
func (g *restGateway) listRelated(ctx context.Context, filterKey, filterValue string, page int) ([]models.Entity, bool, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(defaultPerPage))
	query.Set(filterKey, filterValue)

	var resp api.ListResponse
	if err := g.client.Get(ctx, g.client.ResourcePath(string(g.family)), query, &resp); err != nil {
		return nil, false, fmt.Errorf("failed to list %s by %s: %w", g.family, filterKey, err)
	}

	entities := make([]models.Entity, 0, len(resp.Data))
	for _, raw := range resp.Data {
		entity, err := g.codec.fromWire(raw)
		if err != nil {
			return nil, false, fmt.Errorf("failed to decode %s entity: %w", g.family, err)
		}
		entities = append(entities, *entity)
	}

	return entities, resp.HasMore(), nil
}

// ForFamily возвращает gateway указанного семейства
func ForFamily(client *crm.Client, family models.Family) (Gateway, error) {
	switch family {
	case models.FamilyProjects:
		return NewProjectGateway(client), nil
	case models.FamilyTasks:
		return NewTaskGateway(client), nil
	case models.FamilyUsers:
		return NewUserGateway(client), nil
	case models.FamilyClients:
		return NewClientGateway(client), nil
	case models.FamilyComments:
		return NewCommentGateway(client), nil
	}
	return nil, fmt.Errorf("no gateway for family %q", family)
}
