package services_test

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/suby/app/services"
	"github.com/shashiranjanraj/suby/pkg/apperr"
)

type productFixture struct {
	*firmFixture
	svc *services.ProductService
}

func newProductFixture() *productFixture {
	f := newFirmFixture()
	return &productFixture{
		firmFixture: f,
		svc:         services.NewProductService(f.firms, f.products, noopTx{}, f.assets),
	}
}

func (f *productFixture) addFirm(t *testing.T) string {
	t.Helper()
	v := f.addVendor(t)
	result, err := f.firmFixture.svc.AddFirm(context.Background(), v.ID.Hex(), validFirmInput())
	if err != nil {
		t.Fatalf("seed firm: %v", err)
	}
	return result.FirmID
}

func TestProductAddAndList(t *testing.T) {
	f := newProductFixture()
	firmID := f.addFirm(t)
	ctx := context.Background()

	product, err := f.svc.Add(ctx, firmID, services.AddProductInput{
		ProductName: "Masala Dosa",
		Price:       120,
		Category:    []string{"veg"},
	})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if len(product.Category) != 1 || product.Category[0] != "veg" {
		t.Errorf("category = %v, want [veg]", product.Category)
	}

	products, err := f.svc.ByFirm(ctx, firmID)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 1 || products[0].ID != product.ID {
		t.Errorf("products = %v, want the one added", products)
	}

	// The firm record must reference the product.
	firm, _ := f.firms.FindByID(ctx, firmID)
	if len(firm.Products) != 1 || firm.Products[0] != product.ID {
		t.Errorf("firm product list = %v", firm.Products)
	}
}

func TestProductAddValidation(t *testing.T) {
	f := newProductFixture()
	firmID := f.addFirm(t)

	_, err := f.svc.Add(context.Background(), firmID, services.AddProductInput{Price: -1})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestProductDelete(t *testing.T) {
	f := newProductFixture()
	firmID := f.addFirm(t)
	ctx := context.Background()

	product, err := f.svc.Add(ctx, firmID, services.AddProductInput{
		ProductName: "Masala Dosa",
		Price:       120,
		Image:       "dosa.png",
	})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	if err := f.svc.Delete(ctx, product.ID.Hex()); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	products, _ := f.svc.ByFirm(ctx, firmID)
	if len(products) != 0 {
		t.Errorf("products = %v, want empty", products)
	}
	firm, _ := f.firms.FindByID(ctx, firmID)
	if len(firm.Products) != 0 {
		t.Errorf("firm product list = %v, want empty", firm.Products)
	}
	if removed := f.assets.removed(); len(removed) != 1 || removed[0] != "dosa.png" {
		t.Errorf("asset removals = %v, want [dosa.png]", removed)
	}
}
