// Package exporter writes glossary collections back out in the import file
// format, so a glossary can be moved between databases or kept under review
// as plain text. Output is YAML unless the destination ends in .json.
package exporter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/glossd/internal/importer"
	"github.com/jpl-au/glossd/internal/progress"
	"github.com/jpl-au/glossd/internal/store"
	"gopkg.in/yaml.v3"
)

// Stdout as a destination writes the document to the command's writer.
const Stdout = "-"

var (
	// ErrUnsupportedFormat is returned for destinations that are neither
	// YAML nor JSON.
	ErrUnsupportedFormat = errors.New("unsupported export format (use .yaml, .yml or .json)")

	// ErrNothingToExport is returned when the filter matches no collection.
	ErrNothingToExport = errors.New("no collections to export")
)

// Options selects what to export. CollectionID wins over Owner.
type Options struct {
	Owner        int64
	CollectionID int64
	Force        bool // Overwrite an existing file
}

// Result contains the outcome of an export operation.
type Result struct {
	Path        string `json:"path"`
	Collections int    `json:"collections"`
	Entries     int    `json:"entries"`
	Aliases     int    `json:"aliases"`
}

// Source is the read side of a store that an export needs.
type Source interface {
	ListCollections(ctx context.Context, f store.CollectionFilter) ([]store.Collection, error)
	Entries(ctx context.Context, collectionID int64) ([]store.Entry, error)
	Aliases(ctx context.Context, entryID int64) ([]string, error)
}

// Run exports the selected collections to dst. Unapproved entries are kept
// and marked so a re-import restores them as they were. With dst Stdout the
// document goes to w; otherwise w gets one line per collection.
func Run(ctx context.Context, w io.Writer, src Source, dst string, opts Options) (Result, error) {
	result := Result{Path: dst}

	encode, err := encoderFor(dst)
	if err != nil {
		return result, err
	}

	f := store.CollectionFilter{OwnerScopeID: opts.Owner}
	if opts.CollectionID > 0 {
		f = store.CollectionFilter{ID: opts.CollectionID}
	}
	colls, err := src.ListCollections(ctx, f)
	if err != nil {
		return result, err
	}
	if len(colls) == 0 {
		return result, ErrNothingToExport
	}

	var doc importer.File
	entries := make([][]store.Entry, len(colls))
	total := 0
	for i, c := range colls {
		if entries[i], err = src.Entries(ctx, c.ID); err != nil {
			return result, err
		}
		total += len(entries[i])
	}

	prog := progress.New("Exporting", total)
	defer prog.Done()

	for i, c := range colls {
		out := importer.Collection{Name: c.Name, Owner: c.OwnerScopeID, Entries: []importer.Entry{}}
		for _, e := range entries[i] {
			aliases, err := src.Aliases(ctx, e.ID)
			if err != nil {
				return result, err
			}
			out.Entries = append(out.Entries, toImportEntry(e, aliases))
			result.Entries++
			result.Aliases += len(aliases)
			prog.Increment()
			prog.Print()
		}
		doc.Collections = append(doc.Collections, out)
		result.Collections++
	}

	data, err := encode(doc)
	if err != nil {
		return result, fmt.Errorf("encode: %w", err)
	}

	if dst == Stdout {
		_, err := w.Write(data)
		return result, err
	}
	if err := writeFile(dst, data, opts.Force); err != nil {
		return result, err
	}
	for i, c := range doc.Collections {
		fmt.Fprintf(w, "Exported: %d entries <- %s\n", len(entries[i]), c.Name)
	}
	return result, nil
}

func toImportEntry(e store.Entry, aliases []string) importer.Entry {
	out := importer.Entry{
		Term:       e.Term,
		Definition: e.Definition,
		Aliases:    aliases,
	}
	if e.Format != store.FormatHTML {
		out.Format = e.Format
	}
	if !e.Approved {
		approved := false
		out.Approved = &approved
	}
	return out
}

func encoderFor(dst string) (func(importer.File) ([]byte, error), error) {
	switch strings.ToLower(filepath.Ext(dst)) {
	case ".json":
		return func(f importer.File) ([]byte, error) {
			b, err := json.MarshalIndent(f, "", "  ")
			return append(b, '\n'), err
		}, nil
	case ".yaml", ".yml":
		return marshalYAML, nil
	}
	if dst == Stdout {
		return marshalYAML, nil
	}
	return nil, fmt.Errorf("%s: %w", dst, ErrUnsupportedFormat)
}

func marshalYAML(f importer.File) ([]byte, error) {
	return yaml.Marshal(f)
}

// writeFile writes data to path through an os.Root on its directory, so the
// file name cannot escape it.
func writeFile(path string, data []byte, force bool) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return fmt.Errorf("opening destination: %w", err)
	}
	defer root.Close()

	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite): %w", path, fs.ErrExist)
		}
	}

	f, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
