package repository

import (
	"context"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{collection: db.Collection("carts")}
}

func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart); err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

// ReplaceItems overwrites the whole item list, creating the cart on first save.
// Concurrent writers are not reconciled; the last write wins.
func (r *CartRepository) ReplaceItems(ctx context.Context, userID string, items []models.LineItem) (*models.Cart, error) {
	if items == nil {
		items = []models.LineItem{}
	}

	update := bson.M{
		"$set":         bson.M{"items": items, "updatedAt": now()},
		"$setOnInsert": bson.M{"userId": userID},
	}

	var cart models.Cart
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, returnAfter().SetUpsert(true)).Decode(&cart)
	if err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
