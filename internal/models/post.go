package models

import "time"

// Post represents a publication authored by a user, optionally filed under a
// group and optionally carrying a stored image reference.
//
// CreatedAt is assigned on insert and never updated afterwards; feed ordering
// depends on it (newest first, ID as the tiebreak for equal timestamps).
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Image     string    `json:"image,omitempty"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"author"`
	GroupID   *uint     `gorm:"index" json:"group_id,omitempty"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
