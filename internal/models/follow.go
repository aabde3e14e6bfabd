package models

import "time"

// Follow is a directed subscription edge: UserID follows AuthorID.
// The composite unique index is a backstop; handlers pre-check so a
// duplicate follow stays a silent no-op rather than a DB error.
type Follow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_author"`
	AuthorID  uint      `json:"author_id" gorm:"index;uniqueIndex:idx_user_author"`
	CreatedAt time.Time `json:"created_at"`
}
