// Package sheet defines the interface for character sheet persistence.
package sheet

//go:generate mockgen -destination=mock/mock_repository.go -package=sheetmock github.com/greyweave/charsheet/internal/repositories/sheet Repository

import (
	"context"

	"github.com/greyweave/charsheet/internal/entities/dnd5e"
)

// Repository defines the interface for character sheet persistence.
// The default deployment is in-memory (session lifetime only); a redis
// implementation exists for keeping a sheet around between commands.
type Repository interface {
	// Create stores a new sheet.
	// Returns errors.InvalidArgument for validation failures.
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a sheet by ID.
	// Returns errors.NotFound if the sheet doesn't exist.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing sheet.
	// Returns errors.NotFound if the sheet doesn't exist.
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a sheet by ID.
	// Returns errors.NotFound if the sheet doesn't exist.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns all stored sheets.
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// CreateInput defines the input for storing a new sheet.
type CreateInput struct {
	Sheet *dnd5e.CharacterSheet
}

// CreateOutput defines the output for storing a new sheet.
type CreateOutput struct {
	Sheet *dnd5e.CharacterSheet
}

// GetInput defines the input for getting a sheet.
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a sheet.
type GetOutput struct {
	Sheet *dnd5e.CharacterSheet
}

// UpdateInput defines the input for updating a sheet.
type UpdateInput struct {
	Sheet *dnd5e.CharacterSheet
}

// UpdateOutput defines the output for updating a sheet.
type UpdateOutput struct {
	Sheet *dnd5e.CharacterSheet
}

// DeleteInput defines the input for deleting a sheet.
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a sheet.
type DeleteOutput struct{}

// ListInput defines the input for listing sheets.
type ListInput struct{}

// ListOutput defines the output for listing sheets.
type ListOutput struct {
	Sheets []*dnd5e.CharacterSheet
}
