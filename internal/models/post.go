package models

import "time"

// Post is a single authored text entry, optionally tagged to a Group
// and an image stored in MongoDB (see Image).
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Author    User      `json:"author" gorm:"foreignKey:AuthorID"`
	GroupID   *uint     `json:"group_id" gorm:"index"`
	Group     *Group    `json:"group,omitempty" gorm:"foreignKey:GroupID"`
	ImageID   string    `json:"image_id,omitempty"`
}
