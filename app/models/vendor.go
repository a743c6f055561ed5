package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Vendor is an account holder. A vendor owns at most one firm; the Firm
// slice is mutated only by the firm service when a firm is added or removed.
type Vendor struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username string               `bson:"username" json:"username"`
	Email    string               `bson:"email" json:"email"`
	Password string               `bson:"password" json:"-"` // bcrypt hash, never serialised
	Firm     []primitive.ObjectID `bson:"firm" json:"firm"`
}

// HasFirm reports whether the vendor already owns a firm.
func (v Vendor) HasFirm() bool { return len(v.Firm) > 0 }

// VendorSummary is the owner projection embedded in firm views.
type VendorSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
}

// Summary projects the vendor down to its identity fields.
func (v Vendor) Summary() VendorSummary {
	return VendorSummary{ID: v.ID, Username: v.Username, Email: v.Email}
}
