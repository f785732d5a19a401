package catalog

import "github.com/piwi3910/citysnap/internal/model"

// Built-in city palette. Footprints are in world units (one voxel = 1).
var defaultPieces = []model.PieceDefinition{
	{ID: "road-straight", Label: "Road", Width: 2, Depth: 2, Category: "road"},
	{ID: "road-corner", Label: "Road Corner", Width: 2, Depth: 2, Category: "road"},
	{ID: "road-tjunction", Label: "T-Junction", Width: 2, Depth: 2, Category: "road"},
	{ID: "road-crossing", Label: "Crossroads", Width: 2, Depth: 2, Category: "road"},
	{ID: "road-long", Label: "Long Road", Width: 2, Depth: 6, Category: "road"},
	{ID: "house-small", Label: "Small House", Width: 2, Depth: 2, Category: "building"},
	{ID: "house-large", Label: "Large House", Width: 3, Depth: 2, Category: "building"},
	{ID: "shop", Label: "Shop", Width: 3, Depth: 3, Category: "building"},
	{ID: "tower", Label: "Tower", Width: 2, Depth: 2, Category: "building"},
	{ID: "office", Label: "Office Block", Width: 4, Depth: 3, Category: "building"},
	{ID: "factory", Label: "Factory", Width: 6, Depth: 4, Category: "building"},
	{ID: "park", Label: "Park", Width: 4, Depth: 4, Category: "nature"},
	{ID: "tree", Label: "Tree", Width: 1, Depth: 1, Category: "nature"},
	{ID: "pond", Label: "Pond", Width: 3, Depth: 2, Category: "nature"},
	{ID: "plaza", Label: "Plaza", Width: 4, Depth: 4, Category: "public"},
	{ID: "fountain", Label: "Fountain", Width: 2, Depth: 2, Category: "public"},
}

var defaultCatalog = MustNew(defaultPieces)

// Default returns the built-in palette.
func Default() *Catalog {
	return defaultCatalog
}
