package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cloudstack/internal/common"
	"github.com/dmitrijs2005/cloudstack/internal/server/models"
	"github.com/dmitrijs2005/cloudstack/internal/server/repositories/repomanager"
)

// ItemService exposes the item store scoped to one owner per call. The owner
// always comes from the resolved identity, never from request data.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewItemService(db *sql.DB, m repomanager.RepositoryManager) *ItemService {
	return &ItemService{db: db, repomanager: m}
}

// Bootstrap creates the items table if it does not exist.
func (s *ItemService) Bootstrap(ctx context.Context) error {
	if err := s.repomanager.Items(s.db).CreateTable(ctx); err != nil {
		return fmt.Errorf("error creating items table: %w", err)
	}
	return nil
}

// Create stores a new item owned by owner and returns it with its id.
func (s *ItemService) Create(ctx context.Context, owner, name, description string) (*models.Item, error) {
	item := &models.Item{Name: name, Description: description, OwnerEmail: owner}
	created, err := s.repomanager.Items(s.db).Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return created, nil
}

// List returns every item owned by owner, ordered by id. The result is never
// nil.
func (s *ItemService) List(ctx context.Context, owner string) ([]*models.Item, error) {
	list, err := s.repomanager.Items(s.db).ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if list == nil {
		list = []*models.Item{}
	}
	return list, nil
}

// Update overwrites name and description of the item with id if owner owns
// it. A missing or foreign id yields common.ErrorNotFound.
func (s *ItemService) Update(ctx context.Context, owner string, id int64, name, description string) (*models.Item, error) {
	item := &models.Item{ID: id, Name: name, Description: description, OwnerEmail: owner}
	if err := s.repomanager.Items(s.db).Update(ctx, item); err != nil {
		return nil, mapItemError(err)
	}
	return item, nil
}

// Delete removes the item with id if owner owns it. A missing or foreign id
// yields common.ErrorNotFound.
func (s *ItemService) Delete(ctx context.Context, owner string, id int64) error {
	if err := s.repomanager.Items(s.db).Delete(ctx, owner, id); err != nil {
		return mapItemError(err)
	}
	return nil
}

func mapItemError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}
