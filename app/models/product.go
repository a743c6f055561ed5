package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is an item sold by a firm. Products are referenced from the
// firm's Products slice, not embedded.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductName string             `bson:"productName" json:"productName"`
	Price       float64            `bson:"price" json:"price"`
	Category    []string           `bson:"category,omitempty" json:"category,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	BestSeller  bool               `bson:"bestSeller" json:"bestSeller"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Firm        primitive.ObjectID `bson:"firm" json:"firm"`
}
