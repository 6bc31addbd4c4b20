package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses, in lifecycle order.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// OrderStatuses is the whitelist of settable statuses.
var OrderStatuses = []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

func IsValidStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// DefaultDeliveryWindow is added to the order date to derive the initial estimate.
const DefaultDeliveryWindow = 72 * time.Hour

type ShippingAddress struct {
	FullName string `json:"fullName" bson:"fullName" validate:"required"`
	Phone    string `json:"phone" bson:"phone" validate:"required"`
	Address  string `json:"address" bson:"address" validate:"required"`
	City     string `json:"city" bson:"city" validate:"required"`
	State    string `json:"state" bson:"state" validate:"required"`
	Pincode  string `json:"pincode" bson:"pincode" validate:"required"`
}

type DeliveryBoy struct {
	Name    string `json:"name" bson:"name" validate:"required"`
	Contact string `json:"contact" bson:"contact"`
}

type Order struct {
	ID                 primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID             string             `json:"userId" bson:"userId"`
	Items              []LineItem         `json:"items" bson:"items"`
	Total              float64            `json:"total" bson:"total"`
	DeliveryCharges    float64            `json:"deliveryCharges" bson:"deliveryCharges"`
	ShippingAddress    ShippingAddress    `json:"shippingAddress" bson:"shippingAddress"`
	Status             string             `json:"status" bson:"status"`
	OrderDate          time.Time          `json:"orderDate" bson:"orderDate"`
	EstimatedDelivery  *time.Time         `json:"estimatedDelivery,omitempty" bson:"estimatedDelivery,omitempty"`
	DeliveryWindow     string             `json:"deliveryWindow,omitempty" bson:"deliveryWindow,omitempty"`
	DeliveryBoy        *DeliveryBoy       `json:"deliveryBoy,omitempty" bson:"deliveryBoy,omitempty"`
	CancellationReason string             `json:"cancellationReason,omitempty" bson:"cancellationReason,omitempty"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ItemsSubtotal sums price×quantity over the line items.
func (o *Order) ItemsSubtotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Subtotal()
	}
	return sum
}

type CreateOrderRequest struct {
	Items           []LineItem       `json:"items" validate:"dive"`
	Total           float64          `json:"total" validate:"gte=0"`
	DeliveryCharges *float64         `json:"deliveryCharges" validate:"omitempty,gte=0"`
	ShippingAddress *ShippingAddress `json:"shippingAddress"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateDeliveryRequest carries the delivery fields an admin may edit
// independently of the status. Nil fields are left untouched. EstimatedDelivery
// accepts RFC 3339 timestamps, "2006-01-02T15:04" or a plain date.
type UpdateDeliveryRequest struct {
	EstimatedDelivery  *string      `json:"estimatedDelivery"`
	DeliveryWindow     *string      `json:"deliveryWindow" validate:"omitempty,max=100"`
	DeliveryBoy        *DeliveryBoy `json:"deliveryBoy"`
	DeliveryCharges    *float64     `json:"deliveryCharges" validate:"omitempty,gte=0"`
	CancellationReason *string      `json:"cancellationReason" validate:"omitempty,max=500"`
}

func (r *UpdateDeliveryRequest) Empty() bool {
	return r.EstimatedDelivery == nil && r.DeliveryWindow == nil && r.DeliveryBoy == nil &&
		r.DeliveryCharges == nil && r.CancellationReason == nil
}

// DeliveryUpdate is the parsed form of UpdateDeliveryRequest handed to storage.
type DeliveryUpdate struct {
	EstimatedDelivery  *time.Time
	DeliveryWindow     *string
	DeliveryBoy        *DeliveryBoy
	DeliveryCharges    *float64
	CancellationReason *string
}

// StatusChange is a status write together with the side-channel fields captured
// alongside it. Zero-valued optional fields are not written.
type StatusChange struct {
	Status             string
	DeliveryBoy        *DeliveryBoy
	DeliveryWindow     string
	EstimatedDelivery  *time.Time
	CancellationReason string
}

// Order event types published to the event bus.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderEvent struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"orderId"`
	UserID         string    `json:"userId"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	Total          float64   `json:"total"`
	ItemCount      int       `json:"itemCount"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func NewOrderEvent(eventType string, order *Order, previousStatus string, at time.Time) OrderEvent {
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}
	return OrderEvent{
		Type:           eventType,
		OrderID:        order.ID.Hex(),
		UserID:         order.UserID,
		Status:         order.Status,
		PreviousStatus: previousStatus,
		Total:          order.Total,
		ItemCount:      count,
		OccurredAt:     at,
	}
}
