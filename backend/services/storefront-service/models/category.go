package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Icon         string             `json:"icon" bson:"icon"`
	Image        string             `json:"image,omitempty" bson:"image,omitempty"`
	DisplayOrder int                `json:"displayOrder" bson:"displayOrder"`
	IsActive     bool               `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CategoryInput struct {
	Name         string `json:"name" validate:"required,max=100"`
	Icon         string `json:"icon" validate:"max=64"`
	Image        string `json:"image" validate:"max=2048"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     *bool  `json:"isActive"`
}
