// Package importer loads glossary collections from YAML or JSON files into a
// store. A whole import runs in one transaction: either every entry from
// every file lands or none does.
//
// File layout:
//
//	collections:
//	  - name: Biology
//	    owner: 3
//	    entries:
//	      - term: Osmosis
//	        definition: Movement of water across a *membrane*.
//	        format: markdown
//	        aliases: [diffusion of water]
//
// A file may instead carry top-level "entries", which are imported into the
// collection named by Options.Collection. JSON documents with the same shape
// are accepted since YAML is a superset of JSON.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jpl-au/glossd/internal/progress"
	"github.com/jpl-au/glossd/internal/store"
	"github.com/jpl-au/glossd/internal/validate"
	"gopkg.in/yaml.v3"
)

// ErrNoCollection is returned for top-level entries without a target collection.
var ErrNoCollection = errors.New("entries without a collection (use --collection)")

// extensions lists the file types picked up from directories.
var extensions = []string{".yaml", ".yml", ".json"}

// File is the decoded import document.
type File struct {
	Collections []Collection `yaml:"collections,omitempty" json:"collections,omitempty"`
	Entries     []Entry      `yaml:"entries,omitempty" json:"entries,omitempty"`
}

// Collection is one collection and its entries.
type Collection struct {
	Name    string  `yaml:"name" json:"name"`
	Owner   int64   `yaml:"owner,omitempty" json:"owner,omitempty"`
	Entries []Entry `yaml:"entries" json:"entries"`
}

// Entry is one glossary term. Approved defaults to true when omitted.
type Entry struct {
	Term       string   `yaml:"term" json:"term"`
	Definition string   `yaml:"definition" json:"definition"`
	Format     string   `yaml:"format,omitempty" json:"format,omitempty"`
	Approved   *bool    `yaml:"approved,omitempty" json:"approved,omitempty"`
	Aliases    []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// Options configures an import operation.
type Options struct {
	Owner      int64  // Owner scope for collections that don't name one
	Collection string // Target for top-level entries
	DryRun     bool   // Parse and count without writing
}

// Result contains the outcome of an import operation.
type Result struct {
	Files       []string `json:"files"`
	Collections int      `json:"collections"`
	Created     int      `json:"created"`
	Entries     int      `json:"entries"`
	Aliases     int      `json:"aliases"`
	DryRun      bool     `json:"dry_run,omitempty"`
}

// Target is the transactional store an import writes into.
type Target interface {
	Tx(ctx context.Context, fn func(store.Writer) error) error
}

// Parse decodes and validates one import document. Unknown keys are rejected
// so that typos like "defintion" do not silently drop data.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	for i, c := range f.Collections {
		if _, err := validate.Name(c.Name); err != nil {
			return fmt.Errorf("collection %d: %w", i+1, err)
		}
		if err := validateEntries(c.Entries); err != nil {
			return fmt.Errorf("collection %q: %w", c.Name, err)
		}
	}
	return validateEntries(f.Entries)
}

func validateEntries(entries []Entry) error {
	for i, e := range entries {
		if _, err := validate.Term(e.Term); err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return nil
}

// resolve folds top-level entries into the target collection and fills in
// default owners.
func (f *File) resolve(opts Options) ([]Collection, error) {
	out := make([]Collection, 0, len(f.Collections)+1)
	for _, c := range f.Collections {
		if c.Owner == 0 {
			c.Owner = opts.Owner
		}
		out = append(out, c)
	}
	if len(f.Entries) > 0 {
		if strings.TrimSpace(opts.Collection) == "" {
			return nil, ErrNoCollection
		}
		out = append(out, Collection{Name: opts.Collection, Owner: opts.Owner, Entries: f.Entries})
	}
	return out, nil
}

// Run imports src, a file or a directory of files, into t. Progress goes
// to stderr and per-collection lines to w.
func Run(ctx context.Context, w io.Writer, t Target, src string, opts Options) (Result, error) {
	result := Result{DryRun: opts.DryRun}

	files, err := sources(src)
	if err != nil {
		return result, err
	}

	var colls []Collection
	for _, p := range files {
		f, err := parseFile(p)
		if err != nil {
			return result, fmt.Errorf("%s: %w", p, err)
		}
		cs, err := f.resolve(opts)
		if err != nil {
			return result, fmt.Errorf("%s: %w", p, err)
		}
		colls = append(colls, cs...)
		result.Files = append(result.Files, p)
	}

	total := 0
	for _, c := range colls {
		total += len(c.Entries)
	}

	if opts.DryRun {
		for _, c := range colls {
			fmt.Fprintf(w, "Would import: %d entries -> %s\n", len(c.Entries), c.Name)
			result.Collections++
			result.Entries += len(c.Entries)
			for _, e := range c.Entries {
				result.Aliases += countAliases(e.Aliases)
			}
		}
		return result, nil
	}

	prog := progress.New("Importing", total)
	defer prog.Done()

	err = t.Tx(ctx, func(tx store.Writer) error {
		for _, c := range colls {
			id, created, err := tx.EnsureCollection(ctx, c.Owner, c.Name)
			if err != nil {
				return err
			}
			result.Collections++
			if created {
				result.Created++
			}
			for _, e := range c.Entries {
				n, err := addEntry(ctx, tx, id, e)
				if err != nil {
					return fmt.Errorf("%s/%s: %w", c.Name, e.Term, err)
				}
				result.Entries++
				result.Aliases += n
				prog.Increment()
				prog.Print()
			}
			fmt.Fprintf(w, "Imported: %d entries -> %s\n", len(c.Entries), c.Name)
		}
		return nil
	})
	if err != nil {
		return Result{DryRun: opts.DryRun, Files: result.Files}, err
	}
	return result, nil
}

// addEntry writes e and its aliases, returning the number of aliases added.
func addEntry(ctx context.Context, tx store.Writer, collectionID int64, e Entry) (int, error) {
	approved := true
	if e.Approved != nil {
		approved = *e.Approved
	}
	id, err := tx.AddEntry(ctx, store.Entry{
		CollectionID: collectionID,
		Term:         e.Term,
		Definition:   e.Definition,
		Format:       e.Format,
		Approved:     approved,
	})
	if err != nil {
		return 0, err
	}
	n := 0
	for _, a := range e.Aliases {
		if strings.TrimSpace(a) == "" {
			continue
		}
		if err := tx.AddAlias(ctx, id, a); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func countAliases(aliases []string) int {
	n := 0
	for _, a := range aliases {
		if strings.TrimSpace(a) != "" {
			n++
		}
	}
	return n
}

func parseFile(p string) (*File, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// sources expands src into the import files it names. Directories are
// scanned one level deep through os.Root, in name order.
func sources(src string) ([]string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{src}, nil
	}

	root, err := os.OpenRoot(src)
	if err != nil {
		return nil, fmt.Errorf("opening source root: %w", err)
	}
	defer root.Close()

	d, err := root.Open(".")
	if err != nil {
		return nil, err
	}
	defer d.Close()

	entries, err := d.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", src, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if slices.Contains(extensions, strings.ToLower(filepath.Ext(name))) {
			files = append(files, filepath.Join(src, name))
		}
	}
	slices.Sort(files)
	return files, nil
}
