package model

import "time"

// Note is a short shared text entry.
// This is a pure domain model with no database-specific dependencies or tags.
// Notes are immutable once created; there is no update path.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
