package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// IsValidRef reports whether id is a well-formed entity reference
// (a 24-character hex ObjectID).
func IsValidRef(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
