package models

// Group is a named collection posts may be filed under. Deleting a
// group keeps its posts and clears their group reference.
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"uniqueIndex;size:200;not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Description string `json:"description"`
}

// CreateGroupRequest defines the body for creating a new group
type CreateGroupRequest struct {
	Title       string `form:"title" json:"title" validate:"required,max=200"`
	Slug        string `form:"slug" json:"slug" validate:"required,max=200,slug"`
	Description string `form:"description" json:"description"`
}
