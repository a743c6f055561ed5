package services_test

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/suby/app/models"
	"github.com/shashiranjanraj/suby/app/services"
	"github.com/shashiranjanraj/suby/pkg/apperr"
)

type firmFixture struct {
	vendors  *fakeVendorStore
	firms    *fakeFirmStore
	products *fakeProductStore
	assets   *recordingRemover
	svc      *services.FirmService
}

func newFirmFixture() *firmFixture {
	f := &firmFixture{
		vendors:  newFakeVendorStore(),
		firms:    newFakeFirmStore(),
		products: newFakeProductStore(),
		assets:   &recordingRemover{},
	}
	f.svc = services.NewFirmService(f.vendors, f.firms, f.products, noopTx{}, f.assets)
	return f
}

func (f *firmFixture) addVendor(t *testing.T) models.Vendor {
	t.Helper()
	v := models.Vendor{Username: "ravi", Email: "ravi@example.com", Password: "hash"}
	if err := f.vendors.Create(context.Background(), &v); err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	return v
}

func validFirmInput() services.AddFirmInput {
	return services.AddFirmInput{
		FirmName: "Spice Garden",
		Area:     "Koramangala",
		Category: []string{"veg"},
		Region:   []string{"south-indian"},
	}
}

func TestAddFirm(t *testing.T) {
	f := newFirmFixture()
	v := f.addVendor(t)
	ctx := context.Background()

	result, err := f.svc.AddFirm(ctx, v.ID.Hex(), validFirmInput())
	if err != nil {
		t.Fatalf("add firm: %v", err)
	}
	if result.FirmName != "Spice Garden" {
		t.Errorf("firm name = %q", result.FirmName)
	}

	// The vendor record must now reference the firm.
	got, _ := f.vendors.FindByID(ctx, v.ID.Hex())
	if len(got.Firm) != 1 || got.Firm[0].Hex() != result.FirmID {
		t.Errorf("vendor firm list = %v, want [%s]", got.Firm, result.FirmID)
	}
}

func TestAddFirmSecondFirmRejected(t *testing.T) {
	f := newFirmFixture()
	v := f.addVendor(t)
	ctx := context.Background()

	if _, err := f.svc.AddFirm(ctx, v.ID.Hex(), validFirmInput()); err != nil {
		t.Fatalf("first firm: %v", err)
	}

	in := validFirmInput()
	in.FirmName = "Another Kitchen"
	_, err := f.svc.AddFirm(ctx, v.ID.Hex(), in)
	if err == nil {
		t.Fatal("expected one-firm violation")
	}
	if apperr.Status(err) != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apperr.Status(err))
	}

	// The rejected attempt must leave no second firm behind.
	got, _ := f.vendors.FindByID(ctx, v.ID.Hex())
	if len(got.Firm) != 1 {
		t.Errorf("vendor firm list length = %d, want 1", len(got.Firm))
	}
	if taken, _ := f.firms.ExistsByName(ctx, "Another Kitchen"); taken {
		t.Error("second firm was persisted despite rejection")
	}
}

func TestAddFirmDuplicateName(t *testing.T) {
	f := newFirmFixture()
	first := f.addVendor(t)
	second := models.Vendor{Username: "meena", Email: "meena@example.com", Password: "hash"}
	if err := f.vendors.Create(context.Background(), &second); err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	ctx := context.Background()

	if _, err := f.svc.AddFirm(ctx, first.ID.Hex(), validFirmInput()); err != nil {
		t.Fatalf("first firm: %v", err)
	}

	_, err := f.svc.AddFirm(ctx, second.ID.Hex(), validFirmInput())
	if err == nil {
		t.Fatal("expected duplicate name error")
	}
	if apperr.Status(err) != http.StatusConflict {
		t.Errorf("status = %d, want 409", apperr.Status(err))
	}
}

func TestAddFirmValidation(t *testing.T) {
	f := newFirmFixture()
	v := f.addVendor(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*services.AddFirmInput)
	}{
		{"missing name", func(in *services.AddFirmInput) { in.FirmName = " " }},
		{"missing area", func(in *services.AddFirmInput) { in.Area = "" }},
		{"no category", func(in *services.AddFirmInput) { in.Category = nil }},
		{"unknown category", func(in *services.AddFirmInput) { in.Category = []string{"vegan"} }},
		{"no region", func(in *services.AddFirmInput) { in.Region = nil }},
		{"unknown region", func(in *services.AddFirmInput) { in.Region = []string{"italian"} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validFirmInput()
			tc.mutate(&in)
			_, err := f.svc.AddFirm(ctx, v.ID.Hex(), in)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Errorf("kind = %v, want validation", apperr.KindOf(err))
			}
		})
	}
}

func TestAddFirmVendorNotFound(t *testing.T) {
	f := newFirmFixture()
	_, err := f.svc.AddFirm(context.Background(), primitive.NewObjectID().Hex(), validFirmInput())
	if !apperr.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestDeleteFirm(t *testing.T) {
	f := newFirmFixture()
	v := f.addVendor(t)
	ctx := context.Background()

	in := validFirmInput()
	in.Image = "abc.png"
	result, err := f.svc.AddFirm(ctx, v.ID.Hex(), in)
	if err != nil {
		t.Fatalf("add firm: %v", err)
	}

	if err := f.svc.DeleteFirm(ctx, result.FirmID); err != nil {
		t.Fatalf("delete firm: %v", err)
	}

	// Firm gone.
	if _, err := f.svc.GetFirm(ctx, result.FirmID); !apperr.IsNotFound(err) {
		t.Errorf("get deleted firm: %v, want not found", err)
	}
	// Vendor registration cleared, so a new firm can be added.
	got, _ := f.vendors.FindByID(ctx, v.ID.Hex())
	if got.HasFirm() {
		t.Error("vendor still references the deleted firm")
	}
	// Image scheduled for cleanup.
	if removed := f.assets.removed(); len(removed) != 1 || removed[0] != "abc.png" {
		t.Errorf("asset removals = %v, want [abc.png]", removed)
	}
}

func TestDeleteFirmMissingVendorTolerated(t *testing.T) {
	f := newFirmFixture()
	v := f.addVendor(t)
	ctx := context.Background()

	result, err := f.svc.AddFirm(ctx, v.ID.Hex(), validFirmInput())
	if err != nil {
		t.Fatalf("add firm: %v", err)
	}

	// Owner disappears before the firm delete.
	if err := f.vendors.Delete(ctx, v.ID); err != nil {
		t.Fatalf("delete vendor: %v", err)
	}

	if err := f.svc.DeleteFirm(ctx, result.FirmID); err != nil {
		t.Fatalf("delete firm with missing owner: %v", err)
	}
}

// failingFirmStore errors the final firm delete so the write ordering
// inside DeleteFirm can be observed.
type failingFirmStore struct {
	*fakeFirmStore
}

func (s failingFirmStore) Delete(context.Context, primitive.ObjectID) error {
	return apperr.Dependency("firm delete failed", context.DeadlineExceeded)
}

func TestDeleteFirmPartialFailureLeavesNoDanglingReference(t *testing.T) {
	f := newFirmFixture()
	v := f.addVendor(t)
	ctx := context.Background()

	result, err := f.svc.AddFirm(ctx, v.ID.Hex(), validFirmInput())
	if err != nil {
		t.Fatalf("add firm: %v", err)
	}

	// Without transactions, the firm delete failing last must not leave
	// the vendor pointing at a firm it no longer effectively owns.
	svc := services.NewFirmService(f.vendors, failingFirmStore{f.firms}, f.products, noopTx{}, f.assets)
	if err := svc.DeleteFirm(ctx, result.FirmID); err == nil {
		t.Fatal("expected the firm delete to fail")
	}

	got, _ := f.vendors.FindByID(ctx, v.ID.Hex())
	if got.HasFirm() {
		t.Error("vendor still references the firm after the failed delete")
	}
}

func TestDeleteFirmNotFound(t *testing.T) {
	f := newFirmFixture()
	err := f.svc.DeleteFirm(context.Background(), primitive.NewObjectID().Hex())
	if !apperr.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

// Random interleavings of firm adds and deletes across several vendors
// must never leave a vendor with more than one firm or a reference to a
// firm that does not exist.
func TestFirmOwnershipInvariantUnderRandomOps(t *testing.T) {
	f := newFirmFixture()
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	var vendorIDs []primitive.ObjectID
	for i := 0; i < 4; i++ {
		v := models.Vendor{
			Username: fmt.Sprintf("vendor%d", i),
			Email:    fmt.Sprintf("vendor%d@example.com", i),
			Password: "hash",
		}
		if err := f.vendors.Create(ctx, &v); err != nil {
			t.Fatalf("seed vendor: %v", err)
		}
		vendorIDs = append(vendorIDs, v.ID)
	}

	checkInvariant := func(step int) {
		t.Helper()
		for _, id := range vendorIDs {
			v, err := f.vendors.FindByID(ctx, id.Hex())
			if err != nil {
				t.Fatalf("step %d: vendor lookup: %v", step, err)
			}
			if len(v.Firm) > 1 {
				t.Fatalf("step %d: vendor %s holds %d firms", step, v.Username, len(v.Firm))
			}
			for _, firmID := range v.Firm {
				firm, err := f.firms.FindByID(ctx, firmID.Hex())
				if err != nil {
					t.Fatalf("step %d: vendor %s references missing firm %s", step, v.Username, firmID.Hex())
				}
				if firm.Vendor != v.ID {
					t.Fatalf("step %d: firm %s owned by %s, referenced by %s", step, firm.FirmName, firm.Vendor.Hex(), v.ID.Hex())
				}
			}
		}
	}

	for step := 0; step < 200; step++ {
		id := vendorIDs[rng.Intn(len(vendorIDs))]
		if rng.Intn(2) == 0 {
			in := validFirmInput()
			in.FirmName = fmt.Sprintf("Firm %d", step)
			_, err := f.svc.AddFirm(ctx, id.Hex(), in)
			if err != nil && apperr.KindOf(err) != apperr.KindConflict {
				t.Fatalf("step %d: add firm: %v", step, err)
			}
		} else {
			v, err := f.vendors.FindByID(ctx, id.Hex())
			if err != nil {
				t.Fatalf("step %d: vendor lookup: %v", step, err)
			}
			if len(v.Firm) > 0 {
				if err := f.svc.DeleteFirm(ctx, v.Firm[0].Hex()); err != nil {
					t.Fatalf("step %d: delete firm: %v", step, err)
				}
			}
		}
		checkInvariant(step)
	}
}

func TestGetFirm(t *testing.T) {
	f := newFirmFixture()
	v := f.addVendor(t)
	ctx := context.Background()

	result, err := f.svc.AddFirm(ctx, v.ID.Hex(), validFirmInput())
	if err != nil {
		t.Fatalf("add firm: %v", err)
	}

	view, err := f.svc.GetFirm(ctx, result.FirmID)
	if err != nil {
		t.Fatalf("get firm: %v", err)
	}
	if view.FirmName != "Spice Garden" {
		t.Errorf("firm name = %q", view.FirmName)
	}
	if view.Owner.Email != "ravi@example.com" {
		t.Errorf("owner email = %q", view.Owner.Email)
	}
	if view.Products == nil {
		t.Error("product list should be empty, not nil")
	}
}
