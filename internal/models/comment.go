package models

import "time"

// Comment is always tied to exactly one post.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	PostID    uint      `json:"post_id" gorm:"index"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Author    User      `json:"author" gorm:"foreignKey:AuthorID"`
}
