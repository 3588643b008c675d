package sheet

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/greyweave/charsheet/internal/entities/dnd5e"
	"github.com/greyweave/charsheet/internal/errors"
)

// InMemoryRepository implements Repository with process-lifetime storage.
// This is the default store: sheets live exactly as long as the session,
// matching the no-persistence contract of the interactive app.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*dnd5e.CharacterSheet
}

// NewInMemory creates a new in-memory repository.
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*dnd5e.CharacterSheet),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a new sheet.
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Sheet == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}
	if input.Sheet.ID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied, err := copySheet(input.Sheet)
	if err != nil {
		return nil, err
	}
	r.store[input.Sheet.ID] = copied

	return &CreateOutput{Sheet: input.Sheet}, nil
}

// Get retrieves a sheet by ID.
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFoundf("sheet %s not found", input.ID)
	}

	// Return a copy so callers can't mutate the stored record.
	copied, err := copySheet(stored)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Sheet: copied}, nil
}

// Update replaces an existing sheet.
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Sheet == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}
	if input.Sheet.ID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Sheet.ID]; !exists {
		return nil, errors.NotFoundf("sheet %s not found", input.Sheet.ID)
	}

	copied, err := copySheet(input.Sheet)
	if err != nil {
		return nil, err
	}
	r.store[input.Sheet.ID] = copied

	return &UpdateOutput{Sheet: input.Sheet}, nil
}

// Delete removes a sheet by ID.
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("sheet %s not found", input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}

// List returns all stored sheets ordered by ID.
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sheets := make([]*dnd5e.CharacterSheet, 0, len(r.store))
	for _, stored := range r.store {
		copied, err := copySheet(stored)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, copied)
	}
	sort.Slice(sheets, func(i, j int) bool { return sheets[i].ID < sheets[j].ID })

	return &ListOutput{Sheets: sheets}, nil
}

// copySheet deep-copies a sheet through its JSON form, which is already
// the storage representation used by the redis implementation.
func copySheet(s *dnd5e.CharacterSheet) (*dnd5e.CharacterSheet, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal sheet")
	}
	var out dnd5e.CharacterSheet
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal sheet")
	}
	return &out, nil
}
