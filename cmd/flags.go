/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Extensions read flag values through the exported accessors rather than
// the variables, so they never depend on cobra internals.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jpl-au/glossd/internal/config"
	"github.com/jpl-au/glossd/internal/glossary"
	"github.com/jpl-au/glossd/internal/repo"
	"github.com/jpl-au/glossd/internal/store"
	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

// Environment variables standing in for --db, --dir and --dsn.
const (
	EnvDB  = "GLOSSD_DB"
	EnvDir = "GLOSSD_DIR"
	EnvDSN = "GLOSSD_DSN"
)

var (
	output string
	author string
	force  bool
	db     string
	dir    string
	driver string
	dsn    string
)

// out is the output writer for commands. Defaults to os.Stdout.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// Output returns the output format flag value.
func Output() string { return output }

// Author returns the author flag value, or the configured author.
func Author() string { return author }

// Force returns the force flag value.
func Force() bool { return force }

// DB returns the database name.
// Priority: --db flag > GLOSSD_DB env var > empty (default database).
func DB() string {
	if db != "" {
		return db
	}
	return os.Getenv(EnvDB)
}

// Dir returns the explicit project directory if set.
// Priority: --dir flag > GLOSSD_DIR env var > empty (use discovery).
func Dir() string {
	if dir != "" {
		return dir
	}
	return os.Getenv(EnvDir)
}

// DSN returns the connection string if set.
// Priority: --dsn flag > GLOSSD_DSN env var > empty (config, then discovery).
func DSN() string {
	if dsn != "" {
		return dsn
	}
	return os.Getenv(EnvDSN)
}

// Options returns the database selection made by the global flags. --dir
// names the project directory; the service expects its .glossd directory.
func Options() glossary.Options {
	opts := glossary.Options{DB: DB(), Driver: driver, DSN: DSN()}
	if d := Dir(); d != "" {
		opts.Dir = filepath.Join(d, repo.Dir)
	}
	return opts
}

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if the error was printed (suppressing Cobra's copy), or the
// original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// detectAuthor resolves the default author for the audit log.
// Returns empty string when config is missing or has no author set.
func detectAuthor() string {
	if cfg, err := config.Load(); err == nil && cfg.Author.Name != "" {
		return cfg.Author.Name
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVarP(&author, "author", "a", "", "Author recorded in the audit log")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Skip confirmations")
	rootCmd.PersistentFlags().StringVar(&db, "db", "", "Database name (e.g., biology for glossd-biology.db)")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Project directory (skip discovery, use explicit path)")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "Database driver: sqlite or postgres")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Connection string (PostgreSQL URL or SQLite file)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("driver", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(store.DialectSQLite), string(store.DialectPostgres)}, cobra.ShellCompDirectiveNoFileComp
	})
}
