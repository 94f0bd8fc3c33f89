package validators

import "go.mongodb.org/mongo-driver/bson"

var ProfileValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"user_id", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"user_id":    bson.M{"bsonType": "string", "minLength": 1},
			"full_name":  bson.M{"bsonType": "string"},
			"email":      bson.M{"bsonType": "string"},
			"phone":      bson.M{"bsonType": "string"},
			"avatar_url": bson.M{"bsonType": "string"},
			"created_at": bson.M{"bsonType": "date"},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}
