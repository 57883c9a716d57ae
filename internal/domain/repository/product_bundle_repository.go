package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductBundleRepository define el puerto para la composición de bundles.
type ProductBundleRepository interface {
	AddComponent(ctx context.Context, component *entity.BundleComponent) error
	ListComponents(ctx context.Context, bundleID string) ([]*entity.BundleComponent, error)
}
