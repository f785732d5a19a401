package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/citysnap/internal/catalog"
	"github.com/piwi3910/citysnap/internal/model"
)

// LayoutVersion is written into every saved layout file.
const LayoutVersion = "1.0.0"

// ErrUnresolvedPiece marks a layout entry whose piece ID is not in the catalog.
var ErrUnresolvedPiece = errors.New("unresolved piece id")

// LayoutFile is the on-disk form of a city layout.
type LayoutFile struct {
	Version string              `json:"version"`
	Name    string              `json:"name"`
	SavedAt string              `json:"saved_at"`
	Pieces  []model.PlacedPiece `json:"pieces"`
}

// SaveLayout writes pieces to path as JSON.
func SaveLayout(path, name string, pieces []model.PlacedPiece) error {
	if pieces == nil {
		pieces = []model.PlacedPiece{}
	}
	lf := LayoutFile{
		Version: LayoutVersion,
		Name:    name,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Pieces:  pieces,
	}
	if err := writeJSON(path, lf); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}

// LoadLayout reads a layout file and checks every piece against cat.
// Rotations are normalized and a zero scale becomes 1. All unresolved
// piece IDs are reported together.
func LoadLayout(path string, cat *catalog.Catalog) (LayoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LayoutFile{}, fmt.Errorf("failed to read layout: %w", err)
	}
	var lf LayoutFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return LayoutFile{}, fmt.Errorf("failed to parse layout: %w", err)
	}
	if lf.Version == "" {
		return LayoutFile{}, fmt.Errorf("invalid layout file: missing version field")
	}

	var errs []error
	seen := make(map[string]bool, len(lf.Pieces))
	for i := range lf.Pieces {
		p := &lf.Pieces[i]
		if p.ID == "" || seen[p.ID] {
			errs = append(errs, fmt.Errorf("piece %d: missing or duplicate instance id %q", i, p.ID))
		}
		seen[p.ID] = true
		if !cat.Has(p.PieceID) {
			errs = append(errs, fmt.Errorf("piece %d (%s): %w %q", i, p.ID, ErrUnresolvedPiece, p.PieceID))
		}
		p.Rotation = model.NormalizeRotation(p.Rotation)
		if p.Scale <= 0 {
			p.Scale = 1
		}
	}
	if len(errs) > 0 {
		return LayoutFile{}, errors.Join(errs...)
	}
	if lf.Pieces == nil {
		lf.Pieces = []model.PlacedPiece{}
	}
	return lf, nil
}
