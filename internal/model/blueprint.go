package model

import (
	"time"

	"github.com/google/uuid"
)

// Blueprint is a reusable group of pieces (a block, a street corner) that
// can be stamped into a layout. Positions are relative to the group origin.
type Blueprint struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   string        `json:"created_at"`
	Pieces      []PlacedPiece `json:"pieces"`
}

// NewBlueprint captures pieces relative to the given origin.
func NewBlueprint(name, description string, pieces []PlacedPiece, origin Point2D) Blueprint {
	rel := make([]PlacedPiece, len(pieces))
	for i, p := range pieces {
		rel[i] = p
		rel[i].X -= origin.X
		rel[i].Z -= origin.Z
	}
	return Blueprint{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Pieces:      rel,
	}
}

// Stamp returns copies of the blueprint pieces placed at origin, each with
// a fresh instance ID so they are independent of the blueprint.
func (b Blueprint) Stamp(origin Point2D) []PlacedPiece {
	out := make([]PlacedPiece, len(b.Pieces))
	for i, p := range b.Pieces {
		np := NewPlacedPiece(p.PieceID, p.X+origin.X, p.Z+origin.Z, p.Rotation)
		if p.Scale > 0 {
			np.Scale = p.Scale
		}
		out[i] = np
	}
	return out
}

// BlueprintStore holds a collection of blueprints.
type BlueprintStore struct {
	Blueprints []Blueprint `json:"blueprints"`
}

// NewBlueprintStore creates an empty store.
func NewBlueprintStore() BlueprintStore {
	return BlueprintStore{Blueprints: []Blueprint{}}
}

// Add adds a blueprint to the store.
func (s *BlueprintStore) Add(b Blueprint) {
	s.Blueprints = append(s.Blueprints, b)
}

// Remove removes a blueprint by ID. Returns true if found and removed.
func (s *BlueprintStore) Remove(id string) bool {
	for i, b := range s.Blueprints {
		if b.ID == id {
			s.Blueprints = append(s.Blueprints[:i], s.Blueprints[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the first blueprint with the given name, or nil.
func (s *BlueprintStore) FindByName(name string) *Blueprint {
	for i := range s.Blueprints {
		if s.Blueprints[i].Name == name {
			return &s.Blueprints[i]
		}
	}
	return nil
}

// Names returns the blueprint names in store order.
func (s *BlueprintStore) Names() []string {
	names := make([]string, len(s.Blueprints))
	for i, b := range s.Blueprints {
		names[i] = b.Name
	}
	return names
}
