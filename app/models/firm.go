package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Firm is a storefront profile. Every firm has exactly one owning vendor,
// and that vendor's Firm slice must contain this firm's id.
type Firm struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FirmName string               `bson:"firmName" json:"firmName"`
	Area     string               `bson:"area" json:"area"`
	Category []string             `bson:"category" json:"category"`
	Region   []string             `bson:"region" json:"region"`
	Offer    string               `bson:"offer,omitempty" json:"offer,omitempty"`
	Image    string               `bson:"image,omitempty" json:"image,omitempty"`
	Vendor   primitive.ObjectID   `bson:"vendor" json:"vendor"`
	Products []primitive.ObjectID `bson:"products" json:"products"`
}

// Firm category and region enumerations.
var (
	FirmCategories = []string{"veg", "non-veg"}
	FirmRegions    = []string{"south-indian", "north-indian", "chinese", "bakery"}
)

// ValidCategory reports whether v is an allowed category value.
func ValidCategory(v string) bool { return contains(FirmCategories, v) }

// ValidRegion reports whether v is an allowed region value.
func ValidRegion(v string) bool { return contains(FirmRegions, v) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
