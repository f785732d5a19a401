package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/citysnap/internal/catalog"
	"github.com/piwi3910/citysnap/internal/model"
)

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version    string                  `json:"version"`
	CreatedAt  string                  `json:"created_at"`
	Config     model.AppConfig         `json:"config"`
	Palette    []model.PieceDefinition `json:"palette"`
	Blueprints model.BlueprintStore    `json:"blueprints"`
}

// ExportAllData bundles config, palette and blueprints into one JSON file.
func ExportAllData(exportPath string, config model.AppConfig, cat *catalog.Catalog, blueprints model.BlueprintStore) error {
	backup := BackupData{
		Version:    "1.0.0",
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Config:     config,
		Palette:    cat.Definitions(),
		Blueprints: blueprints,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}
	if err := writeFile(exportPath, data); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file. The palette is validated so a
// corrupt backup is rejected before anything is applied.
func ImportAllData(importPath string) (BackupData, *catalog.Catalog, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, nil, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, nil, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, nil, fmt.Errorf("invalid backup file: missing version field")
	}
	cat, err := catalog.New(backup.Palette)
	if err != nil {
		return BackupData{}, nil, fmt.Errorf("invalid backup palette: %w", err)
	}
	if backup.Config.RecentLayouts == nil {
		backup.Config.RecentLayouts = []string{}
	}
	if backup.Blueprints.Blueprints == nil {
		backup.Blueprints.Blueprints = []model.Blueprint{}
	}
	return backup, cat, nil
}
