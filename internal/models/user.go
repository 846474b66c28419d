package models

import (
	"github.com/golang-jwt/jwt/v4"
)

// User is a registered author. Posts, comments and both sides of the
// follow graph hang off this row and are cascade-deleted with it.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email    string `json:"-" gorm:"uniqueIndex;size:254"`
	Password string `json:"-"` // bcrypt hash, never serialized
}

// UserCompact is the author representation embedded in feed items
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ToCompact strips a user down to what listings need
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username}
}

// SignupRequest defines the form body for account creation
type SignupRequest struct {
	Username string `form:"username" json:"username" validate:"required,min=2,max=150,alphanum"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=8"`
}

// LoginRequest defines the form body for the login endpoint
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
	Next     string `form:"next" json:"next"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
