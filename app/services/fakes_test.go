package services_test

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/suby/app/models"
	"github.com/shashiranjanraj/suby/pkg/apperr"
)

// In-memory stores backing the service tests. They mirror the repository
// error translation: absent records surface as apperr.NotFound.

type fakeVendorStore struct {
	mu      sync.Mutex
	vendors map[primitive.ObjectID]models.Vendor
}

func newFakeVendorStore() *fakeVendorStore {
	return &fakeVendorStore{vendors: map[primitive.ObjectID]models.Vendor{}}
}

func (s *fakeVendorStore) FindByEmail(_ context.Context, email string) (models.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vendors {
		if v.Email == email {
			return v, nil
		}
	}
	return models.Vendor{}, apperr.NotFound("Vendor not found")
}

func (s *fakeVendorStore) FindByID(_ context.Context, id string) (models.Vendor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Vendor{}, apperr.Validation("invalid vendor id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vendors[oid]
	if !ok {
		return models.Vendor{}, apperr.NotFound("Vendor not found")
	}
	return v, nil
}

func (s *fakeVendorStore) All(_ context.Context) ([]models.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		out = append(out, v)
	}
	return out, nil
}

func (s *fakeVendorStore) Create(_ context.Context, v *models.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	if v.Firm == nil {
		v.Firm = []primitive.ObjectID{}
	}
	for _, existing := range s.vendors {
		if existing.Email == v.Email {
			return apperr.Conflict("Email already registered")
		}
	}
	s.vendors[v.ID] = *v
	return nil
}

func (s *fakeVendorStore) SetFirms(_ context.Context, vendorID primitive.ObjectID, firms []primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vendors[vendorID]
	if !ok {
		return apperr.NotFound("Vendor not found")
	}
	if firms == nil {
		firms = []primitive.ObjectID{}
	}
	v.Firm = firms
	s.vendors[vendorID] = v
	return nil
}

func (s *fakeVendorStore) PullFirm(_ context.Context, vendorID, firmID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vendors[vendorID]
	if !ok {
		return nil // missing owner is tolerated
	}
	kept := v.Firm[:0]
	for _, id := range v.Firm {
		if id != firmID {
			kept = append(kept, id)
		}
	}
	v.Firm = kept
	s.vendors[vendorID] = v
	return nil
}

func (s *fakeVendorStore) Delete(_ context.Context, vendorID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vendors[vendorID]; !ok {
		return apperr.NotFound("Vendor not found")
	}
	delete(s.vendors, vendorID)
	return nil
}

type fakeFirmStore struct {
	mu    sync.Mutex
	firms map[primitive.ObjectID]models.Firm
}

func newFakeFirmStore() *fakeFirmStore {
	return &fakeFirmStore{firms: map[primitive.ObjectID]models.Firm{}}
}

func (s *fakeFirmStore) FindByID(_ context.Context, id string) (models.Firm, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Firm{}, apperr.Validation("invalid firm id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.firms[oid]
	if !ok {
		return models.Firm{}, apperr.NotFound("Firm not found")
	}
	return f, nil
}

func (s *fakeFirmStore) ExistsByName(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.firms {
		if f.FirmName == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeFirmStore) Create(_ context.Context, f *models.Firm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	if f.Products == nil {
		f.Products = []primitive.ObjectID{}
	}
	s.firms[f.ID] = *f
	return nil
}

func (s *fakeFirmStore) PushProduct(_ context.Context, firmID, productID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.firms[firmID]
	if !ok {
		return apperr.NotFound("Firm not found")
	}
	f.Products = append(f.Products, productID)
	s.firms[firmID] = f
	return nil
}

func (s *fakeFirmStore) PullProduct(_ context.Context, firmID, productID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.firms[firmID]
	if !ok {
		return nil
	}
	kept := f.Products[:0]
	for _, id := range f.Products {
		if id != productID {
			kept = append(kept, id)
		}
	}
	f.Products = kept
	s.firms[firmID] = f
	return nil
}

func (s *fakeFirmStore) Delete(_ context.Context, firmID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.firms[firmID]; !ok {
		return apperr.NotFound("Firm not found")
	}
	delete(s.firms, firmID)
	return nil
}

type fakeProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[primitive.ObjectID]models.Product{}}
}

func (s *fakeProductStore) FindByID(_ context.Context, id string) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, apperr.Validation("invalid product id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[oid]
	if !ok {
		return models.Product{}, apperr.NotFound("Product not found")
	}
	return p, nil
}

func (s *fakeProductStore) ByFirm(_ context.Context, firmID primitive.ObjectID) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Product
	for _, p := range s.products {
		if p.Firm == firmID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.products[p.ID] = *p
	return nil
}

func (s *fakeProductStore) Delete(_ context.Context, productID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[productID]; !ok {
		return apperr.NotFound("Product not found")
	}
	delete(s.products, productID)
	return nil
}

func (s *fakeProductStore) DeleteByFirm(_ context.Context, firmID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.products {
		if p.Firm == firmID {
			delete(s.products, id)
		}
	}
	return nil
}

// noopTx runs the function directly; the fakes have no transactions.
type noopTx struct{}

func (noopTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingRemover captures asset removal requests.
type recordingRemover struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingRemover) Remove(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recordingRemover) removed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}
