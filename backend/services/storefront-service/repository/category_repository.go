package repository

import (
	"context"
	"strings"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepository struct {
	collection *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{collection: db.Collection("categories")}
}

func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "displayOrder", Value: 1}, {Key: "name", Value: 1}}).
		SetCollation(caseInsensitive)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var category models.Category
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&category); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	opts := options.FindOne().SetCollation(caseInsensitive)
	if err := r.collection.FindOne(ctx, bson.M{"name": strings.TrimSpace(name)}, opts).Decode(&category); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	category.ID = primitive.NilObjectID
	category.CreatedAt = now()
	category.UpdatedAt = category.CreatedAt

	res, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		return translate(err)
	}
	category.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CategoryRepository) Replace(ctx context.Context, id string, category *models.Category) (*models.Category, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"name":         category.Name,
		"icon":         category.Icon,
		"image":        category.Image,
		"displayOrder": category.DisplayOrder,
		"isActive":     category.IsActive,
		"updatedAt":    now(),
	}

	var updated models.Category
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, returnAfter()).Decode(&updated)
	if err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
