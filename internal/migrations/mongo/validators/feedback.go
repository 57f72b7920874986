package validators

import "go.mongodb.org/mongo-driver/bson"

var FeedbackValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
			},

			"at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
