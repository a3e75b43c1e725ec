// Package repo provides repository initialisation and discovery for glossd.
//
// A glossd repository is a .glossd directory containing one or more SQLite
// glossary databases. This package handles:
//   - Initialising new repositories (creating .glossd/ and the database)
//   - Discovering existing repositories by walking up the directory tree
//   - Managing multiple named databases (glossd.db, glossd-biology.db, etc.)
//   - Controlling git visibility via .gitignore (local vs shared databases)
//
// PostgreSQL deployments have no repository; they are reached by DSN.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/glossd/internal/store"
)

const (
	// Dir is the directory name for the glossd repository.
	Dir = ".glossd"
	// DBFile is the default database filename.
	DBFile = "glossd.db"

	dbPrefix = "glossd-"
)

// ErrNotInitialised is returned when no glossd repository is found.
var ErrNotInitialised = errors.New("glossd not initialised (run 'glossd init')")

// DBFileName returns the database filename for a given name.
// Empty name returns "glossd.db", "biology" returns "glossd-biology.db" and
// a name already ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return dbPrefix + name + ".db"
}

// Init creates dir/.glossd and an empty glossary database inside it.
// The schema is applied immediately so the first search never races a
// migration. Config is left to "glossd config".
func Init(force bool, db string, local bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	root := filepath.Join(dir, Dir)
	dbPath := filepath.Join(root, DBFileName(db))

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		if err := removeDB(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	// Only written on first init so local database markers survive.
	gitignore := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		s := `# glossd - ignore local config and WAL files
# Database files (*.db) hold the glossary and should be committed
config.yaml
*.db-wal
*.db-shm
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}

	if local {
		if err := IgnoreDB(db, root); err != nil {
			return fmt.Errorf("ignore database: %w", err)
		}
	}

	return nil
}

// removeDB deletes a database and its WAL sidecar files.
func removeDB(path string) error {
	if err := os.Remove(path); err != nil {
		return err
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(path + suffix); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Locate returns the database path for db. An explicit dir is used as the
// .glossd directory without discovery; otherwise the tree is walked upwards.
func Locate(db, dir string) (string, error) {
	if dir == "" {
		return Discover(db)
	}
	p := filepath.Join(dir, DBFileName(db))
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotInitialised, p)
		}
		return "", err
	}
	return p, nil
}

// Discover walks up the directory tree looking for a .glossd database.
// The db parameter specifies which database to find (empty for default).
func Discover(db string) (string, error) {
	dbFile := DBFileName(db)
	var found string
	err := walkUp(func(dir string) bool {
		p := filepath.Join(dir, Dir, dbFile)
		if _, err := os.Stat(p); err == nil {
			found = p
			return true
		}
		return false
	})
	return found, err
}

// DiscoverDir finds the .glossd directory, walking up the tree.
func DiscoverDir() (string, error) {
	var found string
	err := walkUp(func(dir string) bool {
		p := filepath.Join(dir, Dir)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			found = p
			return true
		}
		return false
	})
	return found, err
}

// walkUp calls match for the working directory and each parent until match
// reports true or the filesystem root is passed.
func walkUp(match func(dir string) bool) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	for {
		if match(dir) {
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ErrNotInitialised
		}
		dir = parent
	}
}

// DBInfo holds database metadata.
type DBInfo struct {
	Name  string // Short name (empty for default, "biology" for glossd-biology.db)
	File  string // Filename
	Path  string // Full path
	Local bool   // True if gitignored
}

// ListDBs returns all databases in the .glossd directory with their status.
// If dir is empty, discovers the .glossd directory from the working directory.
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return nil, fmt.Errorf("discover .glossd directory: %w", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read .glossd directory: %w", err)
	}

	var dbs []DBInfo
	for _, e := range entries {
		file := e.Name()
		if !strings.HasSuffix(file, ".db") {
			continue
		}

		var name string
		switch {
		case file == DBFile:
		case strings.HasPrefix(file, dbPrefix):
			name = strings.TrimSuffix(strings.TrimPrefix(file, dbPrefix), ".db")
		default:
			continue
		}

		// An unreadable .gitignore counts as shared.
		ignored, err := IsIgnored(name, dir)
		if err != nil {
			ignored = false
		}
		dbs = append(dbs, DBInfo{
			Name:  name,
			File:  file,
			Path:  filepath.Join(dir, file),
			Local: ignored,
		})
	}

	return dbs, nil
}
