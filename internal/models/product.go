package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocalizedString carries both storefront languages; the frontend picks
// the one matching the visitor's locale.
type LocalizedString struct {
	En string `bson:"en" json:"en"`
	Es string `bson:"es" json:"es"`
}

// Pick returns the text for a locale, falling back to English.
func (s LocalizedString) Pick(locale string) string {
	if locale == "es" && s.Es != "" {
		return s.Es
	}
	if s.En != "" {
		return s.En
	}
	return s.Es
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        LocalizedString    `bson:"name" json:"name"`
	Description LocalizedString    `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	// Category is a bare ObjectID reference everywhere; it is never
	// replaced by a populated document on any code path.
	Category  primitive.ObjectID `bson:"category" json:"category"`
	Images    []string           `bson:"images" json:"images"`
	Stock     int                `bson:"stock" json:"stock"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
