package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/suby/app/models"
	"github.com/shashiranjanraj/suby/app/services"
	"github.com/shashiranjanraj/suby/pkg/apperr"
	"github.com/shashiranjanraj/suby/pkg/auth"
)

func newAuthService(vendors *fakeVendorStore) *services.AuthService {
	return services.NewAuthService(vendors, newFakeFirmStore(), newFakeProductStore(), auth.NewJWT("test-secret", time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	vendors := newFakeVendorStore()
	svc := newAuthService(vendors)
	ctx := context.Background()

	in := services.RegisterInput{Username: "ravi", Email: "ravi@example.com", Password: "secret123"}
	if err := svc.Register(ctx, in); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(ctx, "ravi@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.Vendor.Email != "ravi@example.com" {
		t.Errorf("vendor email = %q", result.Vendor.Email)
	}
	if result.Vendor.PrimaryFirm != nil {
		t.Error("fresh vendor should have no firm")
	}

	// Stored password must be a hash, not the plaintext.
	v, _ := vendors.FindByEmail(ctx, "ravi@example.com")
	if v.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
}

// The login payload carries the vendor's resolved firm, not just its id.
func TestLoginReturnsResolvedFirm(t *testing.T) {
	vendors := newFakeVendorStore()
	firms := newFakeFirmStore()
	products := newFakeProductStore()
	svc := services.NewAuthService(vendors, firms, products, auth.NewJWT("test-secret", time.Hour))
	ctx := context.Background()

	in := services.RegisterInput{Username: "ravi", Email: "ravi@example.com", Password: "secret123"}
	if err := svc.Register(ctx, in); err != nil {
		t.Fatalf("register: %v", err)
	}

	v, err := vendors.FindByEmail(ctx, "ravi@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	firm := models.Firm{FirmName: "Spice Garden", Area: "Koramangala", Vendor: v.ID}
	if err := firms.Create(ctx, &firm); err != nil {
		t.Fatalf("seed firm: %v", err)
	}
	dosa := models.Product{ProductName: "Masala Dosa", Price: 80, Firm: firm.ID}
	if err := products.Create(ctx, &dosa); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if err := vendors.SetFirms(ctx, v.ID, []primitive.ObjectID{firm.ID}); err != nil {
		t.Fatalf("attach firm: %v", err)
	}

	result, err := svc.Login(ctx, "ravi@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if len(result.Vendor.Firm) != 1 || result.Vendor.Firm[0].FirmName != "Spice Garden" {
		t.Fatalf("resolved firms = %+v, want Spice Garden", result.Vendor.Firm)
	}
	if got := result.Vendor.Firm[0].Products; len(got) != 1 || got[0].ProductName != "Masala Dosa" {
		t.Errorf("nested products = %+v, want Masala Dosa", got)
	}
	if result.Vendor.PrimaryFirm == nil || *result.Vendor.PrimaryFirm != firm.ID {
		t.Errorf("primary firm = %v, want %s", result.Vendor.PrimaryFirm, firm.ID.Hex())
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	vendors := newFakeVendorStore()
	svc := newAuthService(vendors)
	ctx := context.Background()

	in := services.RegisterInput{Username: "ravi", Email: "ravi@example.com", Password: "secret123"}
	if err := svc.Register(ctx, in); err != nil {
		t.Fatalf("first register: %v", err)
	}

	err := svc.Register(ctx, in)
	if err == nil {
		t.Fatal("expected duplicate email error")
	}
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("kind = %v, want conflict", apperr.KindOf(err))
	}
	if apperr.Status(err) != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apperr.Status(err))
	}
}

func TestLoginUndifferentiatedErrors(t *testing.T) {
	vendors := newFakeVendorStore()
	svc := newAuthService(vendors)
	ctx := context.Background()

	in := services.RegisterInput{Username: "ravi", Email: "ravi@example.com", Password: "secret123"}
	if err := svc.Register(ctx, in); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Unknown email and wrong password must be indistinguishable.
	_, errUnknown := svc.Login(ctx, "nobody@example.com", "secret123")
	_, errWrongPw := svc.Login(ctx, "ravi@example.com", "wrong")

	for _, err := range []error{errUnknown, errWrongPw} {
		if err == nil {
			t.Fatal("expected login failure")
		}
		if apperr.KindOf(err) != apperr.KindAuth {
			t.Errorf("kind = %v, want auth", apperr.KindOf(err))
		}
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("login errors differ: %q vs %q", errUnknown, errWrongPw)
	}
}
