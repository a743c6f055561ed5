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

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(database.ColProducts)}
}

// FindByID looks up a product by its hex object id.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, apperr.Validation("invalid product id")
	}
	var p models.Product
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, apperr.NotFound("Product not found")
	}
	if err != nil {
		return models.Product{}, apperr.Dependency("product lookup failed", err)
	}
	return p, nil
}

// ByFirm returns all products belonging to a firm.
func (r *ProductRepository) ByFirm(ctx context.Context, firmID primitive.ObjectID) ([]models.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{"firm": firmID})
	if err != nil {
		return nil, apperr.Dependency("product list failed", err)
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, apperr.Dependency("product list failed", err)
	}
	return products, nil
}

// Create persists a new product record and fills in its id.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return apperr.Dependency("product create failed", err)
	}
	return nil
}

// Delete removes the product record.
func (r *ProductRepository) Delete(ctx context.Context, productID primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		return apperr.Dependency("product delete failed", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("Product not found")
	}
	return nil
}

// DeleteByFirm removes every product belonging to a firm.
func (r *ProductRepository) DeleteByFirm(ctx context.Context, firmID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"firm": firmID})
	if err != nil {
		return apperr.Dependency("product delete failed", err)
	}
	return nil
}
