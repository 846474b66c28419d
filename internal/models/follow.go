package models

import "time"

// Follow is a directed edge: UserID receives AuthorID's posts in the
// follow feed. The (user_id, author_id) pair is unique at the store
// level; self-follow is only screened in the follow handler.
type Follow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_author;not null"`
	User      User      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uint      `json:"author_id" gorm:"index;uniqueIndex:idx_user_author;not null"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time `json:"created_at"`
}
