package quote

import (
	"context"
	"time"

	"github.com/patabima/patabima/internal/types"
)

type Repository interface {
	Create(ctx context.Context, quote *Quote) error
	Get(ctx context.Context, id string) (*Quote, error)
	List(ctx context.Context, filter Filter) ([]*Quote, error)
	// UpdateStatus persists a status change. Frozen fields are never
	// written after creation.
	UpdateStatus(ctx context.Context, quote *Quote) error
}

// Filter narrows quote listings
type Filter struct {
	ProductType   types.ProductType
	Status        types.QuoteStatus
	CreatedBefore time.Time
}
