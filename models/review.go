package models

import "go.mongodb.org/mongo-driver/bson"

// Review documents carry caller-defined fields and are passed through as is.
type Review = bson.M
