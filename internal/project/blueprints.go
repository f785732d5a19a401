package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/citysnap/internal/model"
)

// DefaultBlueprintPath returns ~/.citysnap/blueprints.json.
func DefaultBlueprintPath() string {
	return filepath.Join(DefaultConfigDir(), "blueprints.json")
}

// SaveBlueprints writes the blueprint store to a JSON file.
func SaveBlueprints(path string, store model.BlueprintStore) error {
	return writeJSON(path, store)
}

// LoadBlueprints reads a blueprint store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadBlueprints(path string) (model.BlueprintStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewBlueprintStore(), nil
		}
		return model.BlueprintStore{}, err
	}
	var store model.BlueprintStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.BlueprintStore{}, err
	}
	if store.Blueprints == nil {
		store.Blueprints = []model.Blueprint{}
	}
	return store, nil
}
