package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Username     string             `json:"username,omitempty" bson:"username,omitempty"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Avatar       string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	IsAdmin      bool               `json:"isAdmin" bson:"isAdmin"`
	IsBlocked    bool               `json:"isBlocked" bson:"isBlocked"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PublicUser is the user shape returned alongside a token.
type PublicUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

// Customer is the denormalized view of an order's owner used in notifications.
type Customer struct {
	Name  string
	Email string
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=100"`
	Phone  *string `json:"phone" validate:"omitempty,max=20"`
	Avatar *string `json:"avatar" validate:"omitempty,max=2048"`
}

type BlockUserRequest struct {
	Blocked *bool `json:"blocked"`
}
