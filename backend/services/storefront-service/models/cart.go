package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LineItem is a snapshot of a product taken when it was added to a cart or order.
type LineItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name" validate:"required"`
	Image     string  `json:"image" bson:"image"`
	Price     float64 `json:"price" bson:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" bson:"quantity" validate:"gte=1"`
}

func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

type Cart struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId"`
	Items     []LineItem         `json:"items" bson:"items"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type SaveCartRequest struct {
	Items []LineItem `json:"items" validate:"dive"`
}
