package repository

import (
	"context"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ContactRepository struct {
	collection *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{collection: db.Collection("contacts")}
}

func (r *ContactRepository) Get(ctx context.Context) (*models.Contact, error) {
	var contact models.Contact
	if err := r.collection.FindOne(ctx, bson.M{}).Decode(&contact); err != nil {
		return nil, translate(err)
	}
	return &contact, nil
}

// Upsert replaces the singleton record, creating it on first save.
func (r *ContactRepository) Upsert(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	contact.UpdatedAt = now()

	filter := bson.M{}
	if existing, err := r.Get(ctx); err == nil {
		filter["_id"] = existing.ID
	} else if err != ErrNotFound {
		return nil, err
	}

	doc := *contact
	doc.ID = primitive.NilObjectID
	update := bson.M{"$set": doc}

	var saved models.Contact
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, returnAfter().SetUpsert(true)).Decode(&saved); err != nil {
		return nil, translate(err)
	}
	return &saved, nil
}
