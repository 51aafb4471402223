package models

import "time"

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsStaff      bool   `json:"is_staff"`
}

type PasswordReset struct {
	UserID       int        `json:"user"`
	ResetToken   *string    `json:"-"`
	TokenCreated *time.Time `json:"-"`
}
