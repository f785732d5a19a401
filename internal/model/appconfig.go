package model

import (
	"errors"
	"fmt"
)

// SnapSettings controls the edge-snapping thresholds and editor steps.
// Both thresholds are multiples of one base distance.
type SnapSettings struct {
	BaseDistance       float64 `json:"base_distance"`       // world units
	ConsiderMultiplier float64 `json:"consider_multiplier"` // search radius = base * this
	CommitMultiplier   float64 `json:"commit_multiplier"`   // snap radius = base * this
	RotationStep       float64 `json:"rotation_step"`       // degrees per rotate key press
	NudgeStep          float64 `json:"nudge_step"`          // world units per nudge
}

// DefaultSnapSettings returns the stock thresholds: search within 3 units,
// snap within 1.5 units, rotate in quarter turns.
func DefaultSnapSettings() SnapSettings {
	return SnapSettings{
		BaseDistance:       1.0,
		ConsiderMultiplier: 3.0,
		CommitMultiplier:   1.5,
		RotationStep:       90,
		NudgeStep:          0.5,
	}
}

// ConsiderDistance is the radius beyond which candidates are ignored.
func (s SnapSettings) ConsiderDistance() float64 {
	return s.BaseDistance * s.ConsiderMultiplier
}

// CommitDistance is the radius within which the nearest candidate is taken.
func (s SnapSettings) CommitDistance() float64 {
	return s.BaseDistance * s.CommitMultiplier
}

// Validate reports every non-positive setting.
func (s SnapSettings) Validate() error {
	var errs []error
	check := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, v))
		}
	}
	check("base_distance", s.BaseDistance)
	check("consider_multiplier", s.ConsiderMultiplier)
	check("commit_multiplier", s.CommitMultiplier)
	check("rotation_step", s.RotationStep)
	check("nudge_step", s.NudgeStep)
	return errors.Join(errs...)
}

// AppConfig holds application-wide preferences.
type AppConfig struct {
	Snap           SnapSettings `json:"snap"`
	DefaultCatalog string       `json:"default_catalog"` // palette file; empty = built-in
	RecentLayouts  []string     `json:"recent_layouts"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Snap:           DefaultSnapSettings(),
		DefaultCatalog: "",
		RecentLayouts:  []string{},
	}
}

// AddRecentLayout moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentLayout(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentLayouts {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentLayouts = recent
}
