package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/suby/app/models"
)

// The store interfaces are the slice of the repository layer each service
// needs. The repositories satisfy them; tests substitute in-memory fakes.

type VendorStore interface {
	FindByEmail(ctx context.Context, email string) (models.Vendor, error)
	FindByID(ctx context.Context, id string) (models.Vendor, error)
	All(ctx context.Context) ([]models.Vendor, error)
	Create(ctx context.Context, v *models.Vendor) error
	SetFirms(ctx context.Context, vendorID primitive.ObjectID, firms []primitive.ObjectID) error
	PullFirm(ctx context.Context, vendorID, firmID primitive.ObjectID) error
	Delete(ctx context.Context, vendorID primitive.ObjectID) error
}

type FirmStore interface {
	FindByID(ctx context.Context, id string) (models.Firm, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, f *models.Firm) error
	PushProduct(ctx context.Context, firmID, productID primitive.ObjectID) error
	PullProduct(ctx context.Context, firmID, productID primitive.ObjectID) error
	Delete(ctx context.Context, firmID primitive.ObjectID) error
}

type ProductStore interface {
	FindByID(ctx context.Context, id string) (models.Product, error)
	ByFirm(ctx context.Context, firmID primitive.ObjectID) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, productID primitive.ObjectID) error
	DeleteByFirm(ctx context.Context, firmID primitive.ObjectID) error
}

// TxRunner scopes a function to a single transactional unit when the
// deployment supports it.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// AssetRemover schedules stored file removal. Implementations must not
// fail the calling operation; cleanup is best-effort.
type AssetRemover interface {
	Remove(path string)
}
