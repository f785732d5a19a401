// citysnap drives the piece catalog and snap engine from the command line.
//
// Build:
//   go build -o citysnap ./cmd/citysnap
//
// Examples:
//   citysnap -list
//   citysnap -layout town.json -piece house-small -x 0.2 -z 1.9
//   citysnap -layout town.json -piece house-small -x 0.2 -z 1.9 -commit
//   citysnap -import pieces.xlsx -out palette.toml

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/citysnap/internal/catalog"
	"github.com/piwi3910/citysnap/internal/editor"
	"github.com/piwi3910/citysnap/internal/engine"
	"github.com/piwi3910/citysnap/internal/importer"
	"github.com/piwi3910/citysnap/internal/model"
	"github.com/piwi3910/citysnap/internal/project"
)

const maxRecentLayouts = 10

type options struct {
	configPath  string
	catalogPath string
	layoutPath  string
	importPath  string
	outPath     string
	dxfScale    float64
	list        bool
	piece       string
	x, z        float64
	rotation    float64
	commit      bool
	libraryPath string
	saveAs      string
	libraryList bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("citysnap: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("citysnap", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "application config file")
	fs.StringVar(&opts.catalogPath, "catalog", "", "palette file (.json or .toml); overrides the config")
	fs.StringVar(&opts.layoutPath, "layout", "", "layout file to query or update")
	fs.StringVar(&opts.importPath, "import", "", "build a palette from a .csv, .xlsx or .dxf file")
	fs.StringVar(&opts.outPath, "out", "", "where -import writes the palette (.json or .toml)")
	fs.Float64Var(&opts.dxfScale, "dxf-scale", 1, "drawing units per world unit multiplier for DXF import")
	fs.BoolVar(&opts.list, "list", false, "list the palette")
	fs.StringVar(&opts.piece, "piece", "", "piece type to place")
	fs.Float64Var(&opts.x, "x", 0, "cursor X")
	fs.Float64Var(&opts.z, "z", 0, "cursor Z")
	fs.Float64Var(&opts.rotation, "rot", 0, "rotation of the new piece in degrees")
	fs.BoolVar(&opts.commit, "commit", false, "place the piece and save the layout")
	fs.StringVar(&opts.libraryPath, "library", project.DefaultLibraryPath(), "layout library database")
	fs.StringVar(&opts.saveAs, "save-as", "", "store the resulting layout in the library under this name")
	fs.BoolVar(&opts.libraryList, "library-list", false, "list layouts stored in the library")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.commit && opts.layoutPath == "" {
		return options{}, errors.New("-commit requires -layout")
	}
	if opts.importPath != "" && opts.outPath == "" {
		return options{}, errors.New("-import requires -out")
	}
	return opts, nil
}

func run(args []string, out io.Writer) error {
	ctx := context.Background()
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	if opts.importPath != "" {
		return runImport(opts, out)
	}

	cfg, err := project.LoadAppConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	catPath := opts.catalogPath
	if catPath == "" {
		catPath = cfg.DefaultCatalog
	}
	cat, err := project.LoadCatalogOrDefault(catPath)
	if err != nil {
		return err
	}

	if opts.list {
		listCatalog(out, cat)
		return nil
	}
	if opts.libraryList {
		return listLibrary(ctx, out, opts.libraryPath)
	}
	if opts.piece == "" && opts.saveAs == "" {
		return errors.New("nothing to do: pass -list, -library-list, -import, -piece or -save-as")
	}

	ed := editor.New(cat, cfg.Snap)
	name := ""
	if opts.layoutPath != "" {
		lf, err := loadLayoutIfExists(opts.layoutPath, cat)
		if err != nil {
			return err
		}
		name = lf.Name
		if err := ed.Load(lf.Pieces); err != nil {
			return err
		}
	}

	if opts.piece != "" {
		if err := place(ed, opts, cfg, name, out); err != nil {
			return err
		}
	}
	if opts.saveAs != "" {
		return saveToLibrary(ctx, out, opts.libraryPath, opts.saveAs, ed.Pieces())
	}
	return nil
}

// place previews the selected piece at the cursor and, with -commit,
// adds it to the layout file.
func place(ed *editor.Editor, opts options, cfg model.AppConfig, name string, out io.Writer) error {
	if err := ed.Select(opts.piece); err != nil {
		return err
	}
	ed.SetRotation(opts.rotation)
	pos := ed.Preview(opts.x, opts.z)
	if pos.Snapped {
		fmt.Fprintf(out, "snap %s at (%g, %g)\n", opts.piece, pos.X, pos.Z)
	} else {
		fmt.Fprintf(out, "free %s at (%g, %g)\n", opts.piece, pos.X, pos.Z)
	}

	if !opts.commit {
		return nil
	}
	placed, err := ed.Commit(opts.x, opts.z)
	if err != nil {
		return err
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(opts.layoutPath), filepath.Ext(opts.layoutPath))
	}
	if err := project.SaveLayout(opts.layoutPath, name, ed.Pieces()); err != nil {
		return err
	}
	fmt.Fprintf(out, "placed %s as %s (%d pieces)\n", placed.PieceID, placed.ID, len(ed.Pieces()))
	for _, w := range engine.FormatOverlapWarnings(ed.Overlaps()) {
		log.Printf("warning: %s", w)
	}

	cfg.AddRecentLayout(opts.layoutPath, maxRecentLayouts)
	if err := project.SaveAppConfig(opts.configPath, cfg); err != nil {
		log.Printf("could not update recent layouts: %v", err)
	}
	return nil
}

func saveToLibrary(ctx context.Context, out io.Writer, path, name string, pieces []model.PlacedPiece) error {
	lib, err := project.OpenLibrary(ctx, path)
	if err != nil {
		return err
	}
	defer lib.Close()
	if err := lib.Save(ctx, name, pieces); err != nil {
		return err
	}
	fmt.Fprintf(out, "stored %q in library (%d pieces)\n", name, len(pieces))
	return nil
}

func listLibrary(ctx context.Context, out io.Writer, path string) error {
	lib, err := project.OpenLibrary(ctx, path)
	if err != nil {
		return err
	}
	defer lib.Close()
	entries, err := lib.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%-24s %4d pieces  %s\n", e.Name, e.PieceCount, e.SavedAt)
	}
	return nil
}

func loadLayoutIfExists(path string, cat *catalog.Catalog) (project.LayoutFile, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return project.LayoutFile{Pieces: []model.PlacedPiece{}}, nil
	}
	return project.LoadLayout(path, cat)
}

func listCatalog(out io.Writer, cat *catalog.Catalog) {
	for _, id := range cat.IDs() {
		def, _ := cat.Lookup(id)
		fmt.Fprintf(out, "%-16s %-10s %gx%g  %s\n", def.ID, def.Category, def.Width, def.Depth, def.Label)
	}
}

func runImport(opts options, out io.Writer) error {
	var res importer.ImportResult
	switch strings.ToLower(filepath.Ext(opts.importPath)) {
	case ".csv", ".txt":
		res = importer.ImportCSV(opts.importPath)
	case ".xlsx", ".xlsm":
		res = importer.ImportExcel(opts.importPath)
	case ".dxf":
		res = importer.ImportDXF(opts.importPath, opts.dxfScale)
	default:
		return fmt.Errorf("unsupported import format %q", filepath.Ext(opts.importPath))
	}
	for _, w := range res.Warnings {
		log.Printf("warning: %s", w)
	}
	for _, e := range res.Errors {
		log.Printf("error: %s", e)
	}
	if len(res.Pieces) == 0 {
		return fmt.Errorf("no pieces imported from %s", opts.importPath)
	}
	cat, err := res.Catalog()
	if err != nil {
		return err
	}
	if err := project.SaveCatalogFile(opts.outPath, cat); err != nil {
		return err
	}
	fmt.Fprintf(out, "imported %d pieces into %s\n", cat.Len(), opts.outPath)
	return nil
}
