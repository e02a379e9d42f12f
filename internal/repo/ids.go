package repo

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a fresh 24-char hex ObjectID. Both backends use this format,
// so an id minted by one store has the same shape as one minted by the other.
func NewID() string { return primitive.NewObjectID().Hex() }

// ValidID reports whether id has the shape of a store identifier.
func ValidID(id string) bool { return primitive.IsValidObjectID(id) }
