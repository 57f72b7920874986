package repository

import (
	"context"
	"time"

	"gymbook/pkg/config"
	apperrors "gymbook/pkg/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "feedback"

// FeedbackRecord is the persisted trace of one feedback submission.
// Attachment content is never stored, only the sanitized metadata.
type FeedbackRecord struct {
	Name            string    `bson:"name"`
	Email           string    `bson:"email"`
	Message         string    `bson:"message"`
	At              time.Time `bson:"at"`
	UserAgent       string    `bson:"ua,omitempty"`
	IP              string    `bson:"ip,omitempty"`
	HasAttachments  bool      `bson:"has_attachments"`
	AttachmentsMeta any       `bson:"attachments_meta,omitempty"`
}

type FeedbackRepository interface {
	Create(ctx context.Context, record *FeedbackRecord) error
}

type mongoFeedbackRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoFeedbackRepository(cfg *config.Config) FeedbackRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoFeedbackRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoFeedbackRepository) Create(ctx context.Context, record *FeedbackRecord) error {
	record.At = time.Now().UTC().Truncate(time.Millisecond)

	_, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return apperrors.Unavailable("Feedback storage").Wrap(err)
	}
	return nil
}
