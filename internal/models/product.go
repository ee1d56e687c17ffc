package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Category and subcategory are free-form
// strings; specs is an ordered list of spec lines shown on the product
// page. Image holds the durable URL returned by the media host.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	OriginalPrice float64            `bson:"original_price,omitempty" json:"originalPrice,omitempty"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Category      string             `bson:"category" json:"category"`
	Subcategory   string             `bson:"subcategory" json:"subcategory"`
	Specs         []string           `bson:"specs" json:"specs"`
	Image         string             `bson:"image" json:"image"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}
