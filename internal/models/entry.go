package models

import "time"

// JournalEntry represents a private journal entry for a user.
// Entries are keyed (owner, entry_id); created_at drives the day queries.
type JournalEntry struct {
	Owner     string    `bson:"owner" json:"owner"`
	EntryID   string    `bson:"entry_id" json:"entryId"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
