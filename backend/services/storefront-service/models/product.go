package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Category      string             `json:"category" bson:"category"`
	Image         string             `json:"image" bson:"image"`
	Price         float64            `json:"price" bson:"price"`
	MRP           *float64           `json:"mrp,omitempty" bson:"mrp,omitempty"`
	Weight        string             `json:"weight,omitempty" bson:"weight,omitempty"`
	Quantity      string             `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	InStock       bool               `json:"inStock" bson:"inStock"`
	Recommended   bool               `json:"recommended" bson:"recommended"`
	PurchaseLimit *int               `json:"purchaseLimit" bson:"purchaseLimit"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// RemainingAllowance reports how many more units a customer may add given
// inCart units already in their cart. limited is false when the product has
// no purchase limit.
func (p *Product) RemainingAllowance(inCart int) (remaining int, limited bool) {
	if p.PurchaseLimit == nil {
		return 0, false
	}
	remaining = *p.PurchaseLimit - inCart
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// ProductInput is the admin create/update body.
type ProductInput struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Category      string   `json:"category" validate:"required"`
	Image         string   `json:"image" validate:"max=2048"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	MRP           *float64 `json:"mrp" validate:"omitempty,gte=0"`
	Weight        string   `json:"weight"`
	Quantity      string   `json:"quantity"`
	Description   string   `json:"description"`
	InStock       *bool    `json:"inStock"`
	Recommended   bool     `json:"recommended"`
	PurchaseLimit *int     `json:"purchaseLimit" validate:"omitempty,gte=1"`
}
