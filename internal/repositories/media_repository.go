package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/quillhub/quill/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MediaRepository defines the interface for image attachment storage
type MediaRepository interface {
	SaveMedia(ctx context.Context, media *models.Media) (string, error)
	GetMediaByID(ctx context.Context, id string) (*models.Media, error)
	DeleteMedia(ctx context.Context, id string) error
}

// MongoMediaRepository implements MediaRepository for MongoDB
type MongoMediaRepository struct {
	collection *mongo.Collection
}

// NewMongoMediaRepository creates a new MongoMediaRepository
func NewMongoMediaRepository(db *mongo.Database) *MongoMediaRepository {
	return &MongoMediaRepository{collection: db.Collection("media")}
}

// SaveMedia stores an image and returns its hex object id
func (r *MongoMediaRepository) SaveMedia(ctx context.Context, media *models.Media) (string, error) {
	media.ID = primitive.NewObjectID()
	media.CreatedAt = time.Now()
	if _, err := r.collection.InsertOne(ctx, media); err != nil {
		return "", err
	}
	return media.ID.Hex(), nil
}

// GetMediaByID retrieves an image by its hex object id
func (r *MongoMediaRepository) GetMediaByID(ctx context.Context, id string) (*models.Media, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid media ID format: %w", err)
	}

	var media models.Media
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&media)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("media not found")
		}
		return nil, err
	}
	return &media, nil
}

// DeleteMedia removes an image by its hex object id
func (r *MongoMediaRepository) DeleteMedia(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid media ID format: %w", err)
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}
