// Package catalog holds the immutable table of building pieces the editor
// can place, keyed by piece ID.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/citysnap/internal/model"
)

var (
	// ErrUnknownPiece is returned when a piece ID has no catalog entry.
	ErrUnknownPiece = errors.New("unknown piece")
	// ErrInvalidDefinition marks a catalog entry rejected at load time.
	ErrInvalidDefinition = errors.New("invalid piece definition")
)

// Catalog maps piece IDs to their definitions. It is never mutated after New.
type Catalog struct {
	defs map[string]model.PieceDefinition
}

// New validates defs and builds a catalog. Every bad entry is reported;
// none of them are kept.
func New(defs []model.PieceDefinition) (*Catalog, error) {
	var errs []error
	byID := make(map[string]model.PieceDefinition, len(defs))
	for i, d := range defs {
		if err := validate(d); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		if _, dup := byID[d.ID]; dup {
			errs = append(errs, fmt.Errorf("entry %d: %w: duplicate id %q", i, ErrInvalidDefinition, d.ID))
			continue
		}
		byID[d.ID] = d
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &Catalog{defs: byID}, nil
}

// MustNew is New for static tables; it panics on invalid input.
func MustNew(defs []model.PieceDefinition) *Catalog {
	c, err := New(defs)
	if err != nil {
		panic(err)
	}
	return c
}

func validate(d model.PieceDefinition) error {
	if d.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidDefinition)
	}
	if !positive(d.Width) || !positive(d.Depth) {
		return fmt.Errorf("%w: %q has footprint %vx%v, both must be positive", ErrInvalidDefinition, d.ID, d.Width, d.Depth)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Lookup returns the definition for pieceID. An empty or unknown ID yields
// an error matching ErrUnknownPiece.
func (c *Catalog) Lookup(pieceID string) (model.PieceDefinition, error) {
	if pieceID == "" {
		return model.PieceDefinition{}, fmt.Errorf("%w: empty id", ErrUnknownPiece)
	}
	d, ok := c.defs[pieceID]
	if !ok {
		return model.PieceDefinition{}, fmt.Errorf("%w: %q", ErrUnknownPiece, pieceID)
	}
	return d, nil
}

// Has reports whether pieceID resolves.
func (c *Catalog) Has(pieceID string) bool {
	_, ok := c.defs[pieceID]
	return ok
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// IDs returns all piece IDs sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.defs))
	for id := range c.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Definitions returns all definitions sorted by ID.
func (c *Catalog) Definitions() []model.PieceDefinition {
	ids := c.IDs()
	out := make([]model.PieceDefinition, len(ids))
	for i, id := range ids {
		out[i] = c.defs[id]
	}
	return out
}

// Categories returns the distinct non-empty categories, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, d := range c.defs {
		if d.Category != "" && !seen[d.Category] {
			seen[d.Category] = true
			cats = append(cats, d.Category)
		}
	}
	sort.Strings(cats)
	return cats
}
