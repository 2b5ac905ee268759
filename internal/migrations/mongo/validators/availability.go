package validators

import "go.mongodb.org/mongo-driver/bson"

var AvailabilityValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"vendor_id",
			"date",
			"is_available",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"vendor_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"is_available": bson.M{
				"bsonType": "bool",
			},

			"booking_status": bson.M{
				"enum": []any{"", "available", "booked", "blocked", "tentative", nil},
			},

			"reason": bson.M{
				"bsonType":  []string{"string", "null"},
				"maxLength": 500,
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
