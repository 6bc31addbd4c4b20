package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Contact struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	BusinessName   string             `json:"businessName" bson:"businessName"`
	Email          string             `json:"email" bson:"email" validate:"omitempty,email"`
	Phone          string             `json:"phone" bson:"phone"`
	AlternatePhone string             `json:"alternatePhone,omitempty" bson:"alternatePhone,omitempty"`
	WhatsApp       string             `json:"whatsapp,omitempty" bson:"whatsapp,omitempty"`
	Address        string             `json:"address" bson:"address"`
	City           string             `json:"city" bson:"city"`
	State          string             `json:"state" bson:"state"`
	Pincode        string             `json:"pincode" bson:"pincode"`
	Country        string             `json:"country" bson:"country"`
	MondayToFriday string             `json:"mondayToFriday" bson:"mondayToFriday"`
	Saturday       string             `json:"saturday" bson:"saturday"`
	Sunday         string             `json:"sunday" bson:"sunday"`
	Facebook       string             `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Instagram      string             `json:"instagram,omitempty" bson:"instagram,omitempty"`
	Twitter        string             `json:"twitter,omitempty" bson:"twitter,omitempty"`
	GoogleMapURL   string             `json:"googleMapUrl,omitempty" bson:"googleMapUrl,omitempty"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// DefaultContact is served until an admin saves the contact record.
func DefaultContact() Contact {
	return Contact{
		BusinessName:   "Better Bite",
		Email:          "info@betterbite.com",
		Phone:          "+91 98765 43210",
		Address:        "123 Market Street",
		City:           "Mumbai",
		State:          "Maharashtra",
		Pincode:        "400001",
		Country:        "India",
		MondayToFriday: "9:00 AM - 8:00 PM",
		Saturday:       "9:00 AM - 6:00 PM",
		Sunday:         "10:00 AM - 4:00 PM",
	}
}
