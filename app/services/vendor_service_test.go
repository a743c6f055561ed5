package services_test

import (
	"context"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/suby/app/models"
	"github.com/shashiranjanraj/suby/app/services"
	"github.com/shashiranjanraj/suby/pkg/apperr"
)

func newVendorService(vendors *fakeVendorStore, firms *fakeFirmStore, products *fakeProductStore) *services.VendorService {
	return services.NewVendorService(vendors, firms, products)
}

func TestVendorGet(t *testing.T) {
	vendors := newFakeVendorStore()
	firms := newFakeFirmStore()
	products := newFakeProductStore()
	svc := newVendorService(vendors, firms, products)
	ctx := context.Background()

	firm := models.Firm{FirmName: "Spice Garden", Area: "Koramangala"}
	if err := firms.Create(ctx, &firm); err != nil {
		t.Fatalf("seed firm: %v", err)
	}
	v := models.Vendor{Username: "ravi", Email: "ravi@example.com", Firm: []primitive.ObjectID{firm.ID}}
	if err := vendors.Create(ctx, &v); err != nil {
		t.Fatalf("seed vendor: %v", err)
	}

	view, err := svc.Get(ctx, v.ID.Hex())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.PrimaryFirm == nil || *view.PrimaryFirm != firm.ID {
		t.Errorf("primary firm = %v, want %s", view.PrimaryFirm, firm.ID.Hex())
	}
}

// The vendor view carries the resolved firm documents with their product
// lists, not just the ids the vendor record stores.
func TestVendorViewResolvesFirmsAndProducts(t *testing.T) {
	vendors := newFakeVendorStore()
	firms := newFakeFirmStore()
	products := newFakeProductStore()
	svc := newVendorService(vendors, firms, products)
	ctx := context.Background()

	firm := models.Firm{FirmName: "Spice Garden", Area: "Koramangala", Category: []string{"veg"}}
	if err := firms.Create(ctx, &firm); err != nil {
		t.Fatalf("seed firm: %v", err)
	}
	dosa := models.Product{ProductName: "Masala Dosa", Price: 80, Firm: firm.ID}
	idli := models.Product{ProductName: "Idli", Price: 40, Firm: firm.ID}
	for _, p := range []*models.Product{&dosa, &idli} {
		if err := products.Create(ctx, p); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	v := models.Vendor{Username: "ravi", Email: "ravi@example.com", Firm: []primitive.ObjectID{firm.ID}}
	if err := vendors.Create(ctx, &v); err != nil {
		t.Fatalf("seed vendor: %v", err)
	}

	view, err := svc.Get(ctx, v.ID.Hex())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Firm) != 1 {
		t.Fatalf("resolved firms = %d, want 1", len(view.Firm))
	}
	got := view.Firm[0]
	if got.FirmName != "Spice Garden" {
		t.Errorf("firm name = %q", got.FirmName)
	}
	if len(got.Products) != 2 {
		t.Fatalf("nested products = %d, want 2", len(got.Products))
	}
	names := map[string]bool{}
	for _, p := range got.Products {
		names[p.ProductName] = true
	}
	if !names["Masala Dosa"] || !names["Idli"] {
		t.Errorf("nested products = %v", names)
	}
}

// A firm id the vendor record still holds but whose document is gone is
// skipped instead of failing the whole view.
func TestVendorViewSkipsMissingFirm(t *testing.T) {
	vendors := newFakeVendorStore()
	svc := newVendorService(vendors, newFakeFirmStore(), newFakeProductStore())
	ctx := context.Background()

	stale := primitive.NewObjectID()
	v := models.Vendor{Username: "ravi", Email: "ravi@example.com", Firm: []primitive.ObjectID{stale}}
	if err := vendors.Create(ctx, &v); err != nil {
		t.Fatalf("seed: %v", err)
	}

	view, err := svc.Get(ctx, v.ID.Hex())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Firm) != 0 {
		t.Errorf("resolved firms = %d, want 0", len(view.Firm))
	}
	if view.PrimaryFirm == nil || *view.PrimaryFirm != stale {
		t.Errorf("primary firm = %v, want %s", view.PrimaryFirm, stale.Hex())
	}
}

func TestVendorGetInvalidID(t *testing.T) {
	svc := newVendorService(newFakeVendorStore(), newFakeFirmStore(), newFakeProductStore())
	_, err := svc.Get(context.Background(), "not-a-hex-id")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestVendorDeleteBlockedWhileFirmExists(t *testing.T) {
	vendors := newFakeVendorStore()
	svc := newVendorService(vendors, newFakeFirmStore(), newFakeProductStore())
	ctx := context.Background()

	v := models.Vendor{Username: "ravi", Email: "ravi@example.com", Firm: []primitive.ObjectID{primitive.NewObjectID()}}
	if err := vendors.Create(ctx, &v); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := svc.Delete(ctx, v.ID.Hex())
	if err == nil {
		t.Fatal("expected delete to be rejected")
	}
	if apperr.Status(err) != http.StatusConflict {
		t.Errorf("status = %d, want 409", apperr.Status(err))
	}
	if _, err := vendors.FindByID(ctx, v.ID.Hex()); err != nil {
		t.Errorf("vendor should still exist: %v", err)
	}
}

func TestVendorDelete(t *testing.T) {
	vendors := newFakeVendorStore()
	svc := newVendorService(vendors, newFakeFirmStore(), newFakeProductStore())
	ctx := context.Background()

	v := models.Vendor{Username: "ravi", Email: "ravi@example.com"}
	if err := vendors.Create(ctx, &v); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Delete(ctx, v.ID.Hex()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := vendors.FindByID(ctx, v.ID.Hex()); !apperr.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}
