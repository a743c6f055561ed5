package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/suby/app/models"
	"github.com/shashiranjanraj/suby/pkg/apperr"
	"github.com/shashiranjanraj/suby/pkg/database"
)

// VendorRepository handles database operations for Vendor.
type VendorRepository struct {
	col *mongo.Collection
}

func NewVendorRepository(db *mongo.Database) *VendorRepository {
	return &VendorRepository{col: db.Collection(database.ColVendors)}
}

// FindByEmail looks up a vendor by email address.
func (r *VendorRepository) FindByEmail(ctx context.Context, email string) (models.Vendor, error) {
	var v models.Vendor
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Vendor{}, apperr.NotFound("Vendor not found")
	}
	if err != nil {
		return models.Vendor{}, apperr.Dependency("vendor lookup failed", err)
	}
	return v, nil
}

// FindByID looks up a vendor by its hex object id.
func (r *VendorRepository) FindByID(ctx context.Context, id string) (models.Vendor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Vendor{}, apperr.Validation("invalid vendor id")
	}
	var v models.Vendor
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Vendor{}, apperr.NotFound("Vendor not found")
	}
	if err != nil {
		return models.Vendor{}, apperr.Dependency("vendor lookup failed", err)
	}
	return v, nil
}

// All returns every vendor, newest first.
func (r *VendorRepository) All(ctx context.Context) ([]models.Vendor, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Dependency("vendor list failed", err)
	}
	var vendors []models.Vendor
	if err := cur.All(ctx, &vendors); err != nil {
		return nil, apperr.Dependency("vendor list failed", err)
	}
	return vendors, nil
}

// Create persists a new vendor record and fills in its id.
func (r *VendorRepository) Create(ctx context.Context, v *models.Vendor) error {
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	if v.Firm == nil {
		v.Firm = []primitive.ObjectID{}
	}
	if _, err := r.col.InsertOne(ctx, v); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("Email already registered")
		}
		return apperr.Dependency("vendor create failed", err)
	}
	return nil
}

// SetFirms replaces the vendor's firm id list.
func (r *VendorRepository) SetFirms(ctx context.Context, vendorID primitive.ObjectID, firms []primitive.ObjectID) error {
	if firms == nil {
		firms = []primitive.ObjectID{}
	}
	res, err := r.col.UpdateByID(ctx, vendorID, bson.M{"$set": bson.M{"firm": firms}})
	if err != nil {
		return apperr.Dependency("vendor update failed", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("Vendor not found")
	}
	return nil
}

// PullFirm removes a firm id from the vendor's firm list if present.
// A vendor that no longer exists is not an error here; firm deletion
// must succeed even when the owner record is already gone.
func (r *VendorRepository) PullFirm(ctx context.Context, vendorID, firmID primitive.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, vendorID, bson.M{"$pull": bson.M{"firm": firmID}})
	if err != nil {
		return apperr.Dependency("vendor update failed", err)
	}
	return nil
}

// Delete removes the vendor record.
func (r *VendorRepository) Delete(ctx context.Context, vendorID primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": vendorID})
	if err != nil {
		return apperr.Dependency("vendor delete failed", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("Vendor not found")
	}
	return nil
}
