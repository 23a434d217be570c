package utils

import "go.mongodb.org/mongo-driver/bson/primitive"

// IsValidObjectID reports whether s is a 24 character hex ObjectID that
// re-serializes to exactly s. Upper-case hex parses but does not round trip,
// so it is rejected.
func IsValidObjectID(s string) bool {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return false
	}
	return oid.Hex() == s
}

// ParseObjectID validates s with IsValidObjectID and returns the parsed id.
func ParseObjectID(s string) (primitive.ObjectID, bool) {
	if !IsValidObjectID(s) {
		return primitive.NilObjectID, false
	}
	oid, _ := primitive.ObjectIDFromHex(s)
	return oid, true
}
