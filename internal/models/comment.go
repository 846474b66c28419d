package models

import "time"

// Comment belongs to exactly one post and is deleted with it.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	Post      Post      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uint      `json:"-" gorm:"index;not null"`
	Author    User      `json:"author" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// CommentForm defines the form body for adding a comment
type CommentForm struct {
	Text string `form:"text" json:"text" validate:"required"`
}
