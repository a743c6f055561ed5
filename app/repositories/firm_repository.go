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

// FirmRepository handles database operations for Firm.
type FirmRepository struct {
	col *mongo.Collection
}

func NewFirmRepository(db *mongo.Database) *FirmRepository {
	return &FirmRepository{col: db.Collection(database.ColFirms)}
}

// FindByID looks up a firm by its hex object id.
func (r *FirmRepository) FindByID(ctx context.Context, id string) (models.Firm, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Firm{}, apperr.Validation("invalid firm id")
	}
	var f models.Firm
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Firm{}, apperr.NotFound("Firm not found")
	}
	if err != nil {
		return models.Firm{}, apperr.Dependency("firm lookup failed", err)
	}
	return f, nil
}

// ExistsByName reports whether a firm with this name already exists.
func (r *FirmRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"firmName": name}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Dependency("firm lookup failed", err)
	}
	return true, nil
}

// Create persists a new firm record and fills in its id.
func (r *FirmRepository) Create(ctx context.Context, f *models.Firm) error {
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	if f.Products == nil {
		f.Products = []primitive.ObjectID{}
	}
	if _, err := r.col.InsertOne(ctx, f); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("Firm name already taken")
		}
		return apperr.Dependency("firm create failed", err)
	}
	return nil
}

// PushProduct appends a product id to the firm's product list.
func (r *FirmRepository) PushProduct(ctx context.Context, firmID, productID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, firmID, bson.M{"$push": bson.M{"products": productID}})
	if err != nil {
		return apperr.Dependency("firm update failed", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("Firm not found")
	}
	return nil
}

// PullProduct removes a product id from the firm's product list.
func (r *FirmRepository) PullProduct(ctx context.Context, firmID, productID primitive.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, firmID, bson.M{"$pull": bson.M{"products": productID}})
	if err != nil {
		return apperr.Dependency("firm update failed", err)
	}
	return nil
}

// Delete removes the firm record.
func (r *FirmRepository) Delete(ctx context.Context, firmID primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": firmID})
	if err != nil {
		return apperr.Dependency("firm delete failed", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("Firm not found")
	}
	return nil
}
