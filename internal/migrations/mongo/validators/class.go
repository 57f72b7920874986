package validators

import "go.mongodb.org/mongo-driver/bson"

// ClassValidator keeps the enrollment counter numeric without constraining
// legacy documents further; missing capacity or enrolled reads as zero in
// the application.
var ClassValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"name": bson.M{
				"bsonType": "string",
			},

			"time": bson.M{
				"bsonType": "string",
			},

			"capacity": bson.M{
				"bsonType": []string{"int", "long", "double"},
				"minimum":  0,
			},

			"enrolled": bson.M{
				"bsonType": []string{"int", "long", "double"},
				"minimum":  0,
			},
		},
	},
}
