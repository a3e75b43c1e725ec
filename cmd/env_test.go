// CLI integration tests build the glossd binary once and run it against a
// fresh project directory per test: command parsing -> service -> store ->
// SQLite. HOME points at a temp dir so a developer's global config never
// leaks in.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the glossd binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "glossd-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "glossd"
		if os.PathSeparator == '\\' {
			binaryName = "glossd.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/
		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newBareEnv creates a project directory without initialising a glossary.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

// newTestEnv creates a project directory with an initialised glossary.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run("init")
	return env
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.home,
		"USERPROFILE="+e.home,
		"GLOSSD_DB=",
		"GLOSSD_DIR=",
		"GLOSSD_DSN=",
	)
	return cmd
}

// run executes glossd with the given args and returns its output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("glossd %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes glossd and returns its output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdin executes glossd with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("glossd %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// runEnv executes glossd with extra environment variables.
func (e *testEnv) runEnv(env []string, args ...string) (string, error) {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Env = append(cmd.Env, env...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// write creates a file in the project directory and returns its path.
func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	p := filepath.Join(e.dir, name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
	return p
}

// seed imports testGlossary.
func (e *testEnv) seed() {
	e.t.Helper()
	e.run("import", e.write("biology.yaml", testGlossary))
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// testGuideContent returns guide/guide.md from the project root.
func testGuideContent() string {
	projectRoot := filepath.Dir(mustGetwd())
	content, err := os.ReadFile(filepath.Join(projectRoot, "guide", "guide.md"))
	if err != nil {
		panic("failed to read guide/guide.md for tests: " + err.Error())
	}
	return string(content)
}

// testGlossary has two courses' worth of collections. Collection ids are
// assigned in file order: Biology 1, Chemistry 2, Physics 3.
const testGlossary = `collections:
  - name: Biology
    owner: 5
    entries:
      - term: Cat
        definition: A small domesticated <b>feline</b>.
        aliases: [moggy]
      - term: Caterpillar
        definition: Larva of a butterfly.
        approved: false
      - term: Cell wall
        definition: "**Rigid** layer outside the membrane."
        format: markdown
  - name: Chemistry
    owner: 5
    entries:
      - term: Catalyst
        definition: Speeds up a reaction without being consumed.
  - name: Physics
    owner: 7
    entries:
      - term: Catapult
        definition: Stores elastic energy to launch a projectile.
`
