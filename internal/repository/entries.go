package repository

import (
	"context"
	"errors"
	"time"

	"github.com/daybook-app/daybook-backend/internal/models"
)

// ErrEntryNotFound is returned by Update when no entry matches (owner, entryID).
// A failed existence check and a cross-owner write are indistinguishable on
// purpose: callers only learn that nothing they own matched.
var ErrEntryNotFound = errors.New("entry not found")

// Patch carries the optional fields of a partial update. A nil field leaves
// the stored value unchanged; UpdatedAt is always rewritten.
type Patch struct {
	Title   *string
	Content *string
}

// Entries is the data-access layer for journal entries. All operations are
// scoped to a single owner; nothing here can read or write across owners.
type Entries interface {
	// Insert writes a new entry with a fresh entryId and returns the stored record.
	Insert(ctx context.Context, owner, title, content string) (*models.JournalEntry, error)

	// QueryByDay returns every entry the owner created on the given UTC
	// calendar day. A day with no entries yields an empty slice, not an error.
	QueryByDay(ctx context.Context, owner string, day time.Time) ([]models.JournalEntry, error)

	// Update applies the patch to the entry matching (owner, entryID) and
	// returns the post-update record. Fails with ErrEntryNotFound when no
	// such entry exists; it never creates one.
	Update(ctx context.Context, owner, entryID string, patch Patch) (*models.JournalEntry, error)

	// Remove deletes the entry matching (owner, entryID). Removing an entry
	// that does not exist is not an error.
	Remove(ctx context.Context, owner, entryID string) error
}

// dayRange returns the inclusive [00:00:00, 23:59:59] UTC window for the
// calendar day containing t.
func dayRange(t time.Time) (start, end time.Time) {
	y, m, d := t.UTC().Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end = time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
	return start, end
}
