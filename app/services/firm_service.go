package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/suby/app/models"
	"github.com/shashiranjanraj/suby/pkg/apperr"
)

// FirmService owns the vendor↔firm relationship: every firm has exactly
// one vendor, and a vendor holds at most one firm.
type FirmService struct {
	vendors  VendorStore
	firms    FirmStore
	products ProductStore
	tx       TxRunner
	assets   AssetRemover
}

func NewFirmService(vendors VendorStore, firms FirmStore, products ProductStore, tx TxRunner, assets AssetRemover) *FirmService {
	return &FirmService{vendors: vendors, firms: firms, products: products, tx: tx, assets: assets}
}

// AddFirmInput carries the firm creation fields. Category and Region
// arrive as string lists from the multipart form.
type AddFirmInput struct {
	FirmName string
	Area     string
	Category []string
	Region   []string
	Offer    string
	Image    string
}

// AddFirmResult is the creation payload returned to the caller.
type AddFirmResult struct {
	FirmID   string `json:"firmId"`
	FirmName string `json:"vendorFirmName"`
}

func (in AddFirmInput) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(in.FirmName) == "" {
		fields["firmName"] = "firmName is required"
	}
	if strings.TrimSpace(in.Area) == "" {
		fields["area"] = "area is required"
	}
	if len(in.Category) == 0 {
		fields["category"] = "at least one category is required"
	}
	for _, c := range in.Category {
		if !models.ValidCategory(c) {
			fields["category"] = fmt.Sprintf("unknown category %q", c)
		}
	}
	if len(in.Region) == 0 {
		fields["region"] = "at least one region is required"
	}
	for _, r := range in.Region {
		if !models.ValidRegion(r) {
			fields["region"] = fmt.Sprintf("unknown region %q", r)
		}
	}
	if len(fields) > 0 {
		return apperr.ValidationFields(fields)
	}
	return nil
}

// AddFirm creates a firm for the vendor and registers it on the vendor
// record. The two writes run inside one transactional unit; when the
// store cannot provide one, the firm insert goes first so a partial
// failure leaves an unreferenced firm rather than a dangling reference.
func (s *FirmService) AddFirm(ctx context.Context, vendorID string, in AddFirmInput) (AddFirmResult, error) {
	if err := in.validate(); err != nil {
		return AddFirmResult{}, err
	}

	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return AddFirmResult{}, err
	}
	if vendor.HasFirm() {
		return AddFirmResult{}, apperr.Conflict("Vendor can have only one firm").WithStatus(400)
	}

	taken, err := s.firms.ExistsByName(ctx, in.FirmName)
	if err != nil {
		return AddFirmResult{}, err
	}
	if taken {
		return AddFirmResult{}, apperr.Conflict("Firm name already taken")
	}

	firm := models.Firm{
		FirmName: in.FirmName,
		Area:     in.Area,
		Category: in.Category,
		Region:   in.Region,
		Offer:    in.Offer,
		Image:    in.Image,
		Vendor:   vendor.ID,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.firms.Create(ctx, &firm); err != nil {
			return err
		}
		return s.vendors.SetFirms(ctx, vendor.ID, append(vendor.Firm, firm.ID))
	})
	if err != nil {
		return AddFirmResult{}, err
	}

	return AddFirmResult{FirmID: firm.ID.Hex(), FirmName: firm.FirmName}, nil
}

// DeleteFirm removes a firm, its products, and its vendor registration.
// The vendor reference is pulled first so that when the store cannot
// provide a transaction, a partial failure leaves an unreferenced firm
// rather than a vendor pointing at a deleted one. The stored image is
// cleaned up in the background; an owner record that is already gone
// does not fail the delete.
func (s *FirmService) DeleteFirm(ctx context.Context, firmID string) error {
	firm, err := s.firms.FindByID(ctx, firmID)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.vendors.PullFirm(ctx, firm.Vendor, firm.ID); err != nil {
			return err
		}
		if err := s.products.DeleteByFirm(ctx, firm.ID); err != nil {
			return err
		}
		return s.firms.Delete(ctx, firm.ID)
	})
	if err != nil {
		return err
	}

	if firm.Image != "" {
		s.assets.Remove(firm.Image)
	}
	return nil
}

// GetFirm returns the firm with its owner summary and product list.
func (s *FirmService) GetFirm(ctx context.Context, firmID string) (FirmView, error) {
	firm, err := s.firms.FindByID(ctx, firmID)
	if err != nil {
		return FirmView{}, err
	}

	view := FirmView{Firm: firm, Products: []models.Product{}}

	owner, err := s.vendors.FindByID(ctx, firm.Vendor.Hex())
	if err == nil {
		view.Owner = owner.Summary()
	} else if !apperr.IsNotFound(err) {
		return FirmView{}, err
	}

	products, err := s.products.ByFirm(ctx, firm.ID)
	if err != nil {
		return FirmView{}, err
	}
	if products != nil {
		view.Products = products
	}
	return view, nil
}
