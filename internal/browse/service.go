package browse

import (
	"context"
	"fmt"

	product "github.com/angelmondragon/storefront-backend/internal/products"
)

type catalogSource interface {
	GetAll(ctx context.Context) []product.Product
}

// Service lists the current catalog.
type Service interface {
	Browse(ctx context.Context, q Query) Result
}

type service struct {
	catalog catalogSource
}

func NewService(catalog catalogSource) (Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	return &service{catalog: catalog}, nil
}

// Browse reloads the catalog and applies q to it.
func (s *service) Browse(ctx context.Context, q Query) Result {
	return Apply(s.catalog.GetAll(ctx), q)
}
