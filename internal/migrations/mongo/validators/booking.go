package validators

import "go.mongodb.org/mongo-driver/bson"

// BookingValidator matches what Reserve writes: a string _id (the composite
// booking key) plus the denormalized class and user fields. additionalProperties
// stays open so older documents keep validating.
var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"class_id",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 3,
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"class_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"user_email": bson.M{
				"bsonType": []string{"string", "null"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
