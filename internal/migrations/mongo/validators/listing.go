package validators

import "go.mongodb.org/mongo-driver/bson"

var ListingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "name", "address", "rent", "gender", "food", "images"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":     bson.M{"bsonType": "string", "minLength": 1},
			"name":    bson.M{"bsonType": "string", "minLength": 1, "maxLength": 200},
			"address": bson.M{"bsonType": "string", "minLength": 1},
			"rent":    bson.M{"bsonType": "number", "minimum": 0},
			"deposit": bson.M{"bsonType": "number", "minimum": 0},
			"rating":  bson.M{"bsonType": "number", "minimum": 0, "maximum": 5},
			"gender": bson.M{
				"bsonType": "string",
				"enum":     []string{"boys", "girls", "coliving"},
			},
			"food": bson.M{
				"bsonType": "string",
				"enum":     []string{"veg", "nonveg", "both"},
			},
			"images": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items":    bson.M{"bsonType": "string"},
			},
			"amenities": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},
			"rooms": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"id", "name", "rent"},
					"properties": bson.M{
						"id":            bson.M{"bsonType": "string"},
						"name":          bson.M{"bsonType": "string"},
						"rent":          bson.M{"bsonType": "number", "minimum": 0},
						"bathroom_type": bson.M{"enum": []string{"private", "shared"}},
					},
				},
			},
		},
	},
}
