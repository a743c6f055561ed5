package services

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/suby/app/models"
	"github.com/shashiranjanraj/suby/pkg/apperr"
)

// ProductService manages the products of a firm. Products exist only as
// children of a firm; there is no standalone catalogue.
type ProductService struct {
	firms    FirmStore
	products ProductStore
	tx       TxRunner
	assets   AssetRemover
}

func NewProductService(firms FirmStore, products ProductStore, tx TxRunner, assets AssetRemover) *ProductService {
	return &ProductService{firms: firms, products: products, tx: tx, assets: assets}
}

// AddProductInput carries the product creation fields.
type AddProductInput struct {
	ProductName string
	Price       float64
	Category    []string
	Image       string
	BestSeller  bool
	Description string
}

func (in AddProductInput) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(in.ProductName) == "" {
		fields["productName"] = "productName is required"
	}
	if in.Price < 0 {
		fields["price"] = "price cannot be negative"
	}
	if len(fields) > 0 {
		return apperr.ValidationFields(fields)
	}
	return nil
}

// Add creates a product under the firm and references it from the firm
// record, in one transactional unit where available.
func (s *ProductService) Add(ctx context.Context, firmID string, in AddProductInput) (models.Product, error) {
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}

	firm, err := s.firms.FindByID(ctx, firmID)
	if err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		ProductName: in.ProductName,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.Image,
		BestSeller:  in.BestSeller,
		Description: in.Description,
		Firm:        firm.ID,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.products.Create(ctx, &product); err != nil {
			return err
		}
		return s.firms.PushProduct(ctx, firm.ID, product.ID)
	})
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// ByFirm lists the products of a firm.
func (s *ProductService) ByFirm(ctx context.Context, firmID string) ([]models.Product, error) {
	firm, err := s.firms.FindByID(ctx, firmID)
	if err != nil {
		return nil, err
	}
	products, err := s.products.ByFirm(ctx, firm.ID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Delete removes a product and its firm reference. The stored image, if
// any, is cleaned up in the background.
func (s *ProductService) Delete(ctx context.Context, productID string) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.products.Delete(ctx, product.ID); err != nil {
			return err
		}
		return s.firms.PullProduct(ctx, product.Firm, product.ID)
	})
	if err != nil {
		return err
	}

	if product.Image != "" {
		s.assets.Remove(product.Image)
	}
	return nil
}
