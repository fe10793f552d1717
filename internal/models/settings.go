package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Settings is a singleton document; the store creates it with these
// defaults on first read.
type Settings struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	StoreName string             `bson:"storeName" json:"storeName"`
	HeroImage string             `bson:"heroImage" json:"heroImage"`
}

func DefaultSettings() *Settings {
	return &Settings{
		StoreName: "Digital Store",
		HeroImage: "/uploads/default-hero.jpg",
	}
}
