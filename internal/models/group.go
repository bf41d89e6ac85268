package models

// Group is an optional category a post can be filed under. Deleting a group
// detaches its posts (group_id set to NULL) instead of deleting them.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"unique;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Posts       []Post `gorm:"foreignKey:GroupID" json:"-"`
}
