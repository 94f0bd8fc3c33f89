package validators

import "go.mongodb.org/mongo-driver/bson"

const calendarDatePattern = `^\d{4}-\d{2}-\d{2}$`

var CheckoutValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"pg_id",
			"pg_name",
			"pg_price",
			"check_in_date",
			"check_out_date",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"pg_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"pg_price": bson.M{
				"bsonType": "number",
				"minimum":  0,
			},

			"check_in_date": bson.M{
				"bsonType": "string",
				"pattern":  calendarDatePattern,
			},

			"check_out_date": bson.M{
				"bsonType": "string",
				"pattern":  calendarDatePattern,
			},

			"guests": bson.M{
				"bsonType": "number",
				"minimum":  1,
				"maximum":  4,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"cancelled",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
