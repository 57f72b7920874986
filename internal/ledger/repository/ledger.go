package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	ledgererrors "gymbook/internal/ledger/errors"
	"gymbook/pkg/config"
	mongotx "gymbook/pkg/db/mongo"
	apperrors "gymbook/pkg/errors"
	"gymbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	ClassesCollection  = "classes"
	BookingsCollection = "bookings"
)

// LedgerRepository is the store surface the reservation ledger runs on. All
// mutating calls are made inside an ExecuteTransaction callback, so reads
// are snapshot-isolated and the write set commits atomically.
type LedgerRepository interface {
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
	GetClass(ctx context.Context, classID string) (*model.ClassSession, error)
	GetBooking(ctx context.Context, bookingID string) (*model.Booking, error)
	CreateBooking(ctx context.Context, booking *model.Booking) error
	DeleteBooking(ctx context.Context, bookingID string) error
	IncrementEnrolled(ctx context.Context, classID string) error
	SetEnrolled(ctx context.Context, classID string, value int) error
	UserIDsByClass(ctx context.Context, classID string) ([]string, error)
}

type mongoLedgerRepository struct {
	cfg       *config.Config
	classes   *mongo.Collection
	bookings  *mongo.Collection
	txManager mongotx.TransactionManager
}

func NewMongoLedgerRepository(cfg *config.Config) LedgerRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLedgerRepository{
		cfg:       cfg,
		classes:   db.Collection(ClassesCollection),
		bookings:  db.Collection(BookingsCollection),
		txManager: mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoLedgerRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

// GetClass decodes the class document leniently: missing or malformed
// capacity/enrolled fields read as 0 rather than failing the operation.
func (r *mongoLedgerRepository) GetClass(ctx context.Context, classID string) (*model.ClassSession, error) {
	var raw bson.M
	err := r.classes.FindOne(ctx, bson.M{"_id": classID}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ledgererrors.ErrClassNotFound
		}
		return nil, apperrors.Internal(fmt.Sprintf("failed to read class %s", classID), err)
	}

	return &model.ClassSession{
		ID:       classID,
		Name:     asString(raw["name"]),
		Time:     asString(raw["time"]),
		Capacity: asInt(raw["capacity"]),
		Enrolled: asInt(raw["enrolled"]),
	}, nil
}

func (r *mongoLedgerRepository) GetBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	var booking model.Booking
	err := r.bookings.FindOne(ctx, bson.M{"_id": bookingID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ledgererrors.ErrNotBooked
		}
		return nil, apperrors.Internal(fmt.Sprintf("failed to read booking %s", bookingID), err)
	}
	return &booking, nil
}

// CreateBooking is the conditional create: the _id is the composite booking
// key, so a concurrent insert of the same key fails with a duplicate key
// error rather than overwriting. That duplicate is the authoritative
// uniqueness signal and surfaces as ErrAlreadyBooked.
func (r *mongoLedgerRepository) CreateBooking(ctx context.Context, booking *model.Booking) error {
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	_, err := r.bookings.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ledgererrors.ErrAlreadyBooked
		}
		return apperrors.Internal(fmt.Sprintf("failed to create booking %s", booking.ID), err)
	}
	return nil
}

func (r *mongoLedgerRepository) DeleteBooking(ctx context.Context, bookingID string) error {
	result, err := r.bookings.DeleteOne(ctx, bson.M{"_id": bookingID})
	if err != nil {
		return apperrors.Internal(fmt.Sprintf("failed to delete booking %s", bookingID), err)
	}
	if result.DeletedCount == 0 {
		return ledgererrors.ErrNotBooked
	}
	return nil
}

// IncrementEnrolled uses the store's atomic $inc so concurrent reservations
// of different seats commute; the counter is never read-modify-written.
func (r *mongoLedgerRepository) IncrementEnrolled(ctx context.Context, classID string) error {
	_, err := r.classes.UpdateOne(ctx,
		bson.M{"_id": classID},
		bson.M{"$inc": bson.M{"enrolled": 1}},
	)
	if err != nil {
		return apperrors.Internal(fmt.Sprintf("failed to increment enrollment for %s", classID), err)
	}
	return nil
}

// SetEnrolled writes the clamped counter value computed by Cancel.
func (r *mongoLedgerRepository) SetEnrolled(ctx context.Context, classID string, value int) error {
	_, err := r.classes.UpdateOne(ctx,
		bson.M{"_id": classID},
		bson.M{"$set": bson.M{"enrolled": value}},
	)
	if err != nil {
		return apperrors.Internal(fmt.Sprintf("failed to set enrollment for %s", classID), err)
	}
	return nil
}

func (r *mongoLedgerRepository) UserIDsByClass(ctx context.Context, classID string) ([]string, error) {
	values, err := r.bookings.Distinct(ctx, "user_id", bson.M{"class_id": classID})
	if err != nil {
		return nil, apperrors.Internal(fmt.Sprintf("failed to list bookings for class %s", classID), err)
	}

	userIDs := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok && id != "" {
			userIDs = append(userIDs, id)
		}
	}
	return userIDs, nil
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case primitive.DateTime:
		return s.Time().UTC().Format(time.RFC3339)
	default:
		return ""
	}
}
