package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/models"
)

// MemoryEntries is the in-memory implementation of Entries used for testing
// and local development without a MongoDB instance.
type MemoryEntries struct {
	mu      sync.RWMutex
	entries map[string]map[string]models.JournalEntry // owner -> entryID -> entry
}

func NewMemoryEntries() *MemoryEntries {
	return &MemoryEntries{
		entries: make(map[string]map[string]models.JournalEntry),
	}
}

// Seed stores entries as-is, keeping their timestamps and IDs. Used by tests
// that need entries on specific calendar days.
func (r *MemoryEntries) Seed(entries ...models.JournalEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range entries {
		if r.entries[entry.Owner] == nil {
			r.entries[entry.Owner] = make(map[string]models.JournalEntry)
		}
		r.entries[entry.Owner][entry.EntryID] = entry
	}
}

func (r *MemoryEntries) Insert(ctx context.Context, owner, title, content string) (*models.JournalEntry, error) {
	now := time.Now().UTC()
	entry := models.JournalEntry{
		Owner:     owner,
		EntryID:   uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries[owner] == nil {
		r.entries[owner] = make(map[string]models.JournalEntry)
	}
	r.entries[owner][entry.EntryID] = entry
	return &entry, nil
}

func (r *MemoryEntries) QueryByDay(ctx context.Context, owner string, day time.Time) ([]models.JournalEntry, error) {
	start, end := dayRange(day)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]models.JournalEntry, 0)
	for _, entry := range r.entries[owner] {
		if entry.CreatedAt.Before(start) || entry.CreatedAt.After(end) {
			continue
		}
		matches = append(matches, entry)
	}
	return matches, nil
}

func (r *MemoryEntries) Update(ctx context.Context, owner, entryID string, patch Patch) (*models.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[owner][entryID]
	if !ok {
		return nil, ErrEntryNotFound
	}

	if patch.Title != nil {
		entry.Title = *patch.Title
	}
	if patch.Content != nil {
		entry.Content = *patch.Content
	}
	entry.UpdatedAt = time.Now().UTC()

	r.entries[owner][entryID] = entry
	return &entry, nil
}

func (r *MemoryEntries) Remove(ctx context.Context, owner, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries[owner], entryID)
	return nil
}
