package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/suby/pkg/apperr"
	"github.com/shashiranjanraj/suby/pkg/cache"
	"github.com/shashiranjanraj/suby/pkg/metrics"
)

// vendorListKey caches the all-vendors listing; mutations invalidate it.
const (
	vendorListKey = "cache:vendors:all"
	vendorListTTL = 30 * time.Second
)

// VendorService owns the vendor read side and vendor deletion. The firm
// and product stores feed the resolved vendor views.
type VendorService struct {
	vendors  VendorStore
	firms    FirmStore
	products ProductStore
}

func NewVendorService(vendors VendorStore, firms FirmStore, products ProductStore) *VendorService {
	return &VendorService{vendors: vendors, firms: firms, products: products}
}

// Get returns the resolved vendor view for an id.
func (s *VendorService) Get(ctx context.Context, id string) (VendorView, error) {
	v, err := s.vendors.FindByID(ctx, id)
	if err != nil {
		return VendorView{}, err
	}
	return resolveVendorView(ctx, v, s.firms, s.products)
}

// All returns every vendor view, served from the Redis cache when warm.
func (s *VendorService) All(ctx context.Context) ([]VendorView, error) {
	var views []VendorView
	if cache.Get(vendorListKey, &views) {
		metrics.CacheHits.WithLabelValues(vendorListKey).Inc()
		return views, nil
	}
	metrics.CacheMisses.WithLabelValues(vendorListKey).Inc()

	vendors, err := s.vendors.All(ctx)
	if err != nil {
		return nil, err
	}

	views = make([]VendorView, 0, len(vendors))
	for _, v := range vendors {
		view, err := resolveVendorView(ctx, v, s.firms, s.products)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	_ = cache.Set(vendorListKey, views, vendorListTTL)
	return views, nil
}

// Delete removes a vendor account. A vendor still holding a firm cannot
// be deleted; the firm must be removed first so no firm is left pointing
// at a missing owner.
func (s *VendorService) Delete(ctx context.Context, id string) error {
	v, err := s.vendors.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if v.HasFirm() {
		return apperr.Conflict("Vendor still owns a firm; delete the firm first")
	}
	if err := s.vendors.Delete(ctx, v.ID); err != nil {
		return err
	}
	_ = cache.Del(vendorListKey)
	return nil
}

// InvalidateListCache drops the cached vendor listing. Called after
// registration and firm mutations so reads do not serve stale views.
func InvalidateListCache() {
	_ = cache.Del(vendorListKey)
}
