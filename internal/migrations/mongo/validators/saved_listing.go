package validators

import "go.mongodb.org/mongo-driver/bson"

var SavedListingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"user_id", "pg_id", "pg_name", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":         bson.M{"bsonType": "string"},
			"user_id":     bson.M{"bsonType": "string", "minLength": 1},
			"pg_id":       bson.M{"bsonType": "string", "minLength": 1},
			"pg_name":     bson.M{"bsonType": "string"},
			"pg_location": bson.M{"bsonType": "string"},
			"pg_price":    bson.M{"bsonType": "number", "minimum": 0},
			"pg_image":    bson.M{"bsonType": "string"},
			"created_at":  bson.M{"bsonType": "date"},
		},
	},
}
