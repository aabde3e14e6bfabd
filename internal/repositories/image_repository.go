package repositories

import (
	"context"
	"time"

	"github.com/dsavelev/postline/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ImageRepository defines the interface for post image storage
type ImageRepository interface {
	SaveImage(ctx context.Context, image *models.Image) error
	GetImageByID(ctx context.Context, id string) (*models.Image, error)
}

// MongoImageRepository implements ImageRepository backed by MongoDB
type MongoImageRepository struct {
	collection *mongo.Collection
}

// NewMongoImageRepository creates a new MongoImageRepository
func NewMongoImageRepository(db *mongo.Database) *MongoImageRepository {
	return &MongoImageRepository{collection: db.Collection("images")}
}

// SaveImage stores an uploaded image document, assigning an ID and
// timestamp when unset.
func (r *MongoImageRepository) SaveImage(ctx context.Context, image *models.Image) error {
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, image)
	return err
}

func (r *MongoImageRepository) GetImageByID(ctx context.Context, id string) (*models.Image, error) {
	var image models.Image
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&image); err != nil {
		return nil, err
	}
	return &image, nil
}
