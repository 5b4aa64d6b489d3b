package model

import "time"

// Content is a piece of admin-editable UI text, addressed by key.
type Content struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description *string   `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}
