package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImport(t *testing.T) {
	t.Run("single file", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("import", env.write("biology.yaml", testGlossary))
		env.contains(out, "Imported 5 entries (1 aliases) into 3 collections (3 new) from 1 files")

		out = env.run("collections")
		env.contains(out, "Biology")
		env.contains(out, "Chemistry")
		env.contains(out, "Physics")
	})

	t.Run("directory", func(t *testing.T) {
		env := newTestEnv(t)

		env.write("src/a.yaml", "collections:\n  - name: Alpha\n    entries:\n      - term: Apple\n        definition: A fruit.\n")
		env.write("src/b.json", `{"collections":[{"name":"Beta","entries":[{"term":"Banana","definition":"Another fruit."}]}]}`)
		env.write("src/notes.txt", "ignored")

		out := env.run("import", filepath.Join(env.dir, "src"))
		env.contains(out, "from 2 files")

		out = env.run("search", "fruit")
		env.contains(out, "Apple")
		env.contains(out, "Banana")
	})

	t.Run("top-level entries need a collection", func(t *testing.T) {
		env := newTestEnv(t)
		src := env.write("terms.yaml", "entries:\n  - term: Osmosis\n    definition: Movement of water.\n")

		env.run("import", src, "--collection", "Cell Biology", "--course", "12")

		out := env.run("collections", "--course", "12")
		env.contains(out, "Cell Biology")
	})

	t.Run("existing collection is reused", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()

		out := env.run("import", env.write("more.yaml", "collections:\n  - name: Biology\n    owner: 5\n    entries:\n      - term: Osmosis\n        definition: Movement of water.\n"))
		env.contains(out, "(0 new)")

		out = env.run("collections", "--course", "5")
		env.contains(out, "Biology")
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("import", env.write("biology.yaml", testGlossary), "--dry-run")
		env.contains(out, "Would import 5 entries")

		out = env.run("collections")
		env.contains(out, "No collections")
	})

	t.Run("json", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("import", env.write("biology.yaml", testGlossary), "-o", "json")
		env.contains(out, `"entries":5`)
		env.contains(out, `"collections":3`)
		assert.NotContains(t, out, "Imported:")
	})
}

func TestImport_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("import", filepath.Join(env.dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown field rolls back", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("src/a.yaml", "collections:\n  - name: Alpha\n    entries:\n      - term: Apple\n        definition: A fruit.\n")
		env.write("src/b.yaml", "collections:\n  - name: Beta\n    entries:\n      - term: Banana\n        defintion: typo\n")

		_, err := env.runErr("import", filepath.Join(env.dir, "src"))
		assert.Error(t, err)

		out := env.run("collections")
		env.contains(out, "No collections")
	})

	t.Run("top-level entries without collection", func(t *testing.T) {
		env := newTestEnv(t)
		src := env.write("terms.yaml", "entries:\n  - term: Osmosis\n    definition: Movement of water.\n")

		_, err := env.runErr("import", src)
		assert.Error(t, err)
	})
}

func TestExport(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()

		out := env.run("export", "backup.yaml")
		env.contains(out, "Exported 5 entries (1 aliases) from 3 collections to backup.yaml")

		other := newTestEnv(t)
		other.run("import", filepath.Join(env.dir, "backup.yaml"))
		env.equals(other.run("collections"), env.run("collections"))
		other.contains(other.run("db", "--stats"), "Entries:     5 (4 approved)")
	})

	t.Run("stdout", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()

		out := env.run("export", "-", "--course", "7")
		env.contains(out, "name: Physics")
		env.contains(out, "term: Catapult")
		assert.NotContains(t, out, "Biology")
	})

	t.Run("keeps unapproved entries", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()

		out := env.run("export", "-", "-c", "1")
		env.contains(out, "term: Caterpillar")
		env.contains(out, "approved: false")
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()
		env.write("backup.json", "{}")

		_, err := env.runErr("export", "backup.json")
		assert.Error(t, err)

		env.run("export", "backup.json", "--force")
		data, err := os.ReadFile(filepath.Join(env.dir, "backup.json"))
		assert.NoError(t, err)
		assert.Contains(t, string(data), `"collections"`)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()

		_, err := env.runErr("export", "backup.txt")
		assert.Error(t, err)
	})
}
