package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/suby/app/models"
	"github.com/shashiranjanraj/suby/pkg/apperr"
)

// VendorFirm is a firm resolved into the vendor view, with its product
// list resolved transitively.
type VendorFirm struct {
	models.Firm
	Products []models.Product `json:"products"`
}

// VendorView is the vendor read model returned by login and the vendor
// endpoints: the vendor record with its firm set fully resolved.
// PrimaryFirm is derived from the first entry of the firm list and is
// null when the vendor has no firm.
type VendorView struct {
	ID          primitive.ObjectID  `json:"id"`
	Username    string              `json:"username"`
	Email       string              `json:"email"`
	Firm        []VendorFirm        `json:"firm"`
	PrimaryFirm *primitive.ObjectID `json:"vendorFirmId"`
}

// resolveVendorView builds the read model, resolving each referenced firm
// and its products. A reference to a firm that no longer exists is
// skipped rather than failing the whole view.
func resolveVendorView(ctx context.Context, v models.Vendor, firms FirmStore, products ProductStore) (VendorView, error) {
	view := VendorView{
		ID:       v.ID,
		Username: v.Username,
		Email:    v.Email,
		Firm:     []VendorFirm{},
	}

	for _, firmID := range v.Firm {
		firm, err := firms.FindByID(ctx, firmID.Hex())
		if err != nil {
			if apperr.IsNotFound(err) {
				continue
			}
			return VendorView{}, err
		}

		list, err := products.ByFirm(ctx, firm.ID)
		if err != nil {
			return VendorView{}, err
		}
		if list == nil {
			list = []models.Product{}
		}
		view.Firm = append(view.Firm, VendorFirm{Firm: firm, Products: list})
	}

	if len(v.Firm) > 0 {
		id := v.Firm[0]
		view.PrimaryFirm = &id
	}
	return view, nil
}

// FirmView is the firm read model: the firm with its owner summary and
// product list resolved.
type FirmView struct {
	models.Firm
	Owner    models.VendorSummary `json:"vendorDetails"`
	Products []models.Product     `json:"productList"`
}
