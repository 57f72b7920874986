package identity

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

var ErrUnknownUser = errors.New("unknown user")

// Directory answers "what email belongs to this user id". Implementations
// may be backed by the profile store or by the identity provider itself.
type Directory interface {
	EmailByUserID(ctx context.Context, userID string) (string, error)
}

type mongoDirectory struct {
	collection *mongo.Collection
}

// NewProfileDirectory reads emails from the users profile collection.
func NewProfileDirectory(db *mongo.Database) Directory {
	return &mongoDirectory{collection: db.Collection(usersCollection)}
}

func (d *mongoDirectory) EmailByUserID(ctx context.Context, userID string) (string, error) {
	var profile struct {
		Email string `bson:"email"`
	}

	err := d.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrUnknownUser
		}
		return "", err
	}

	if profile.Email == "" {
		return "", ErrUnknownUser
	}
	return profile.Email, nil
}

// ResolveEmail walks the directories in order and returns the first email
// found. Lookups are best-effort enrichment: every failure is swallowed and
// an empty string returned, so a directory outage can never fail the caller.
func ResolveEmail(ctx context.Context, userID string, dirs ...Directory) string {
	for _, dir := range dirs {
		if dir == nil {
			continue
		}
		email, err := dir.EmailByUserID(ctx, userID)
		if err == nil && email != "" {
			return email
		}
	}
	return ""
}
