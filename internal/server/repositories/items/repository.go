package items

import (
	"context"

	"github.com/dmitrijs2005/cloudstack/internal/server/models"
)

// Repository is the ownership-scoped item store. Every method that takes an
// owner only ever touches rows whose owner_email equals it.
type Repository interface {
	CreateTable(ctx context.Context) error
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	ListByOwner(ctx context.Context, owner string) ([]*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, owner string, id int64) error
}
