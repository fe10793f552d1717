package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	NameEs    string             `bson:"name_es" json:"name_es"`
	NameEn    string             `bson:"name_en" json:"name_en"`
	Slug      string             `bson:"slug" json:"slug"`
	Color     string             `bson:"color" json:"color"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
