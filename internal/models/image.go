package models

import "time"

// Image is an uploaded post image stored as a MongoDB document.
type Image struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Filename    string    `json:"filename" bson:"filename"`
	ContentType string    `json:"content_type" bson:"content_type"`
	Data        []byte    `json:"-" bson:"data"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
