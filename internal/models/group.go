package models

// Group is a named category posts may belong to.
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:100"`
	Description string `json:"description"`
}
