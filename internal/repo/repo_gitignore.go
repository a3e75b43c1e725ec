// repo_gitignore.go maintains the local-database section of .glossd/.gitignore.
// Existing content and formatting are preserved; only database lines under
// the local header are added or removed.

package repo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const localDBHeader = "# Local databases (not committed)"

// readLines reads a gitignore file and returns its trimmed lines.
func readLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines, nil
}

func resolveDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return DiscoverDir()
}

// IgnoreDB adds a database to the gitignore (marks as local).
func IgnoreDB(name, dir string) error {
	dir, err := resolveDir(dir)
	if err != nil {
		return err
	}

	dbFile := DBFileName(name)
	gitignore := filepath.Join(dir, ".gitignore")

	content, err := os.ReadFile(gitignore)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	lines := strings.Split(string(content), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	if slices.Contains(lines, dbFile) {
		return nil
	}

	s := string(content)
	if !slices.Contains(lines, localDBHeader) {
		s += "\n" + localDBHeader + "\n"
	}
	s += dbFile + "\n"

	return os.WriteFile(gitignore, []byte(s), 0644)
}

// UnignoreDB removes a database from the gitignore (marks as shared).
func UnignoreDB(name, dir string) error {
	dir, err := resolveDir(dir)
	if err != nil {
		return err
	}

	dbFile := DBFileName(name)
	gitignore := filepath.Join(dir, ".gitignore")

	content, err := os.ReadFile(gitignore)
	if err != nil {
		return err
	}

	var out []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != dbFile {
			out = append(out, line)
		}
	}

	// Drop the header once no local databases remain under it.
	result := strings.Join(out, "\n")
	if idx := strings.Index(result, localDBHeader); idx != -1 {
		rest := strings.TrimSpace(result[idx+len(localDBHeader):])
		if !strings.Contains(rest, ".db") {
			result = strings.TrimSuffix(result[:idx], "\n") + "\n"
		}
	}

	return os.WriteFile(gitignore, []byte(result), 0644)
}

// IsIgnored reports whether a database is listed in the gitignore.
func IsIgnored(name, dir string) (bool, error) {
	dir, err := resolveDir(dir)
	if err != nil {
		return false, err
	}

	lines, err := readLines(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return false, err
	}
	return slices.Contains(lines, DBFileName(name)), nil
}
