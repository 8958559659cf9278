package models

import "time"

// Note is a single note as stored by the backend. The backend owns Id and
// both timestamps; the client never fabricates or bumps them locally.
type Note struct {
	Id        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	IsPinned  bool      `json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteDraft carries the client-owned fields sent on create and update.
// Updates send the full field set; the backend replaces the note wholesale
// and returns the authoritative object.
type NoteDraft struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	IsPinned bool   `json:"isPinned"`
}

// Draft returns the note's client-owned fields, ready to be sent back as a
// full-object update payload.
func (n Note) Draft() NoteDraft {
	return NoteDraft{
		Title:    n.Title,
		Content:  n.Content,
		Category: n.Category,
		IsPinned: n.IsPinned,
	}
}
