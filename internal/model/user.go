package model

import "time"

type User struct {
	ID              string    `json:"id"`
	Email           *string   `json:"email"`
	FirstName       *string   `json:"first_name"`
	LastName        *string   `json:"last_name"`
	ProfileImageURL *string   `json:"profile_image_url"`
	IsAdmin         bool      `json:"is_admin"`
	PasswordHash    string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserPatch describes fields merged over an existing user on upsert. Nil
// pointer fields are left unchanged; IsAdmin is applied only when AdminSet.
type UserPatch struct {
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
	IsAdmin         bool
	AdminSet        bool
	PasswordHash    *string
}
