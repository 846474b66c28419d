package models

import "time"

// Post is a published text entry. CreatedAt is assigned by the store
// on insert and never changes on edit.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	AuthorID  uint      `json:"-" gorm:"index;not null"`
	Author    User      `json:"author" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *uint     `json:"-" gorm:"index"`
	Group     *Group    `json:"group,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	ImageID   string    `json:"image_id,omitempty" gorm:"size:24"` // media store object id, hex
}

// PostForm defines the form body shared by the create and edit
// endpoints. The optional image arrives as a separate multipart file.
type PostForm struct {
	Text    string `form:"text" json:"text" validate:"required"`
	GroupID *uint  `form:"group" json:"group"`
}
