package models

import "time"

// Follow is a directed edge meaning "UserID sees AuthorID's posts in their
// following feed".
//
// Both invariants are enforced by the database, not only by application code:
// unique_relationships keeps the (user_id, author_id) pair unique so a
// duplicate-insert race resolves to a single surviving edge, and
// prevent_self_follow rejects edges where a user follows themselves even if
// the application-level guard is bypassed.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:unique_relationships;check:prevent_self_follow,user_id <> author_id" json:"user_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:unique_relationships" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
