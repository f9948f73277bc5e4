package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iudanet/crmsync/internal/crm"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/pkg/api"
)

// CommentGateway работает с ресурсом comments CRM API
type CommentGateway struct {
	restGateway
}

// NewCommentGateway создает gateway семейства comments
func NewCommentGateway(client *crm.Client) *CommentGateway {
	g := &CommentGateway{}
	g.client = client
	g.family = models.FamilyComments
	g.codec = commentCodec{}
	return g
}

// ListByTask возвращает страницу комментариев указанной задачи
func (g *CommentGateway) ListByTask(ctx context.Context, taskID string, page int) ([]models.Entity, bool, error) {
	return g.listRelated(ctx, "task_id", taskID, page)
}

// commentCodec маппит wire-форму api.Comment на локальную models.Comment
type commentCodec struct{}

func (commentCodec) fromWire(raw []byte) (*models.Entity, error) {
	var w api.Comment
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comment: %w", err)
	}

	local := models.Comment{
		ID:       w.ID,
		TaskID:   w.TaskID,
		AuthorID: w.AuthorID,
		Body:     w.Body,
	}
	payload, err := json.Marshal(local)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal comment payload: %w", err)
	}

	return &models.Entity{
		ID:        w.ID,
		Family:    models.FamilyComments,
		Payload:   payload,
		UpdatedAt: w.UpdatedAt,
		Deleted:   w.Deleted,
	}, nil
}

func (commentCodec) toWire(entity *models.Entity) (any, error) {
	var local models.Comment
	if err := json.Unmarshal(entity.Payload, &local); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comment payload: %w", err)
	}

	return api.Comment{
		ID:        entity.ID,
		TaskID:    local.TaskID,
		AuthorID:  local.AuthorID,
		Body:      local.Body,
		UpdatedAt: entity.UpdatedAt,
		Deleted:   entity.Deleted,
	}, nil
}
