package repository

import (
	"context"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{collection: db.Collection("orders")}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	order.ID = primitive.NilObjectID
	order.CreatedAt = now()
	order.UpdatedAt = order.CreatedAt

	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return translate(err)
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.find(ctx, bson.M{"userId": userID}, bson.D{{Key: "createdAt", Value: -1}})
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{}, bson.D{{Key: "orderDate", Value: -1}})
}

func (r *OrderRepository) Find(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	filter := bson.M{}
	if !f.Since.IsZero() {
		filter["orderDate"] = bson.M{"$gte": f.Since}
	}
	if f.ExcludeStatus != "" {
		filter["status"] = bson.M{"$ne": f.ExcludeStatus}
	}
	return r.find(ctx, filter, bson.D{{Key: "orderDate", Value: -1}})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Order, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ApplyStatusChange writes the status and any captured side-channel fields in a
// single update so they become visible together.
func (r *OrderRepository) ApplyStatusChange(ctx context.Context, id string, change models.StatusChange) (*models.Order, error) {
	set := bson.M{"status": change.Status, "updatedAt": now()}
	if change.DeliveryBoy != nil {
		set["deliveryBoy"] = change.DeliveryBoy
	}
	if change.DeliveryWindow != "" {
		set["deliveryWindow"] = change.DeliveryWindow
	}
	if change.EstimatedDelivery != nil {
		set["estimatedDelivery"] = change.EstimatedDelivery
	}
	if change.CancellationReason != "" {
		set["cancellationReason"] = change.CancellationReason
	}
	return r.update(ctx, id, set)
}

func (r *OrderRepository) UpdateDelivery(ctx context.Context, id string, req models.DeliveryUpdate) (*models.Order, error) {
	set := bson.M{"updatedAt": now()}
	if req.EstimatedDelivery != nil {
		set["estimatedDelivery"] = req.EstimatedDelivery.UTC()
	}
	if req.DeliveryWindow != nil {
		set["deliveryWindow"] = *req.DeliveryWindow
	}
	if req.DeliveryBoy != nil {
		set["deliveryBoy"] = req.DeliveryBoy
	}
	if req.DeliveryCharges != nil {
		set["deliveryCharges"] = *req.DeliveryCharges
	}
	if req.CancellationReason != nil {
		set["cancellationReason"] = *req.CancellationReason
	}
	return r.update(ctx, id, set)
}

func (r *OrderRepository) update(ctx context.Context, id string, set bson.M) (*models.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var order models.Order
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, returnAfter()).Decode(&order)
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// Count returns the number of orders, optionally restricted to one status.
func (r *OrderRepository) Count(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.collection.CountDocuments(ctx, filter)
}
