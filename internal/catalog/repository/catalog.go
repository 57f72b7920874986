package repository

import (
	"context"

	"gymbook/pkg/config"
	apperrors "gymbook/pkg/errors"
	"gymbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ClassesCollection = "classes"
	BooksCollection   = "books"
)

// CatalogRepository serves the read-mostly catalog endpoints. Class and book
// documents come back as raw maps because legacy documents do not share a
// fixed shape; the service layer decides which fields are exposed.
type CatalogRepository interface {
	ListClasses(ctx context.Context, limit int64, orderBy string) ([]bson.M, error)
	ListBooks(ctx context.Context) ([]bson.M, error)
	CountBooks(ctx context.Context) (int64, error)
	CreateBook(ctx context.Context, book *model.Book) (string, error)
}

type mongoCatalogRepository struct {
	cfg     *config.Config
	classes *mongo.Collection
	books   *mongo.Collection
}

func NewMongoCatalogRepository(cfg *config.Config) CatalogRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCatalogRepository{
		cfg:     cfg,
		classes: db.Collection(ClassesCollection),
		books:   db.Collection(BooksCollection),
	}
}

func (r *mongoCatalogRepository) ListClasses(ctx context.Context, limit int64, orderBy string) ([]bson.M, error) {
	opts := options.Find()
	if orderBy != "" {
		opts.SetSort(bson.D{{Key: orderBy, Value: 1}})
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	return r.findAll(ctx, r.classes, opts, "Failed to fetch classes")
}

func (r *mongoCatalogRepository) ListBooks(ctx context.Context) ([]bson.M, error) {
	return r.findAll(ctx, r.books, options.Find(), "Failed to fetch books")
}

func (r *mongoCatalogRepository) CountBooks(ctx context.Context) (int64, error) {
	count, err := r.books.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.Internal("Error counting books", err)
	}
	return count, nil
}

func (r *mongoCatalogRepository) CreateBook(ctx context.Context, book *model.Book) (string, error) {
	if book.ID == "" {
		book.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.books.InsertOne(ctx, book)
	if err != nil {
		return "", apperrors.Internal("Failed to create book", err)
	}
	return book.ID, nil
}

// findAll runs an unfiltered find and drains the cursor. Failures surface
// as an AppError whose message is the endpoint's public error text; the
// driver error rides along as the cause for the log line.
func (r *mongoCatalogRepository) findAll(ctx context.Context, coll *mongo.Collection, opts *options.FindOptions, public string) ([]bson.M, error) {
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.Internal(public, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.Internal(public, err)
	}
	return docs, nil
}
