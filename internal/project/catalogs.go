package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/piwi3910/citysnap/internal/catalog"
	"github.com/piwi3910/citysnap/internal/model"
)

// paletteFile is the on-disk shape of a piece catalog, in JSON or TOML.
type paletteFile struct {
	Pieces []model.PieceDefinition `json:"pieces" toml:"pieces"`
}

// LoadCatalogFile reads a palette from a .json or .toml file and validates
// it. Invalid or duplicate definitions fail the whole load.
func LoadCatalogFile(path string) (*catalog.Catalog, error) {
	var pf paletteFile

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.DecodeFile(path, &pf)
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("catalog %s: unknown keys %v", path, undecoded)
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&pf); err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}

	cat, err := catalog.New(pf.Pieces)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// SaveCatalogFile writes the catalog's definitions as JSON or TOML,
// chosen by the file extension.
func SaveCatalogFile(path string, cat *catalog.Catalog) error {
	pf := paletteFile{Pieces: cat.Definitions()}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(pf); err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
		return writeFile(path, buf.Bytes())
	case ".json":
		return writeJSON(path, pf)
	default:
		return fmt.Errorf("unsupported catalog format %q", ext)
	}
}

// LoadCatalogOrDefault loads path, or returns the built-in palette when path is empty.
func LoadCatalogOrDefault(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return LoadCatalogFile(path)
}
