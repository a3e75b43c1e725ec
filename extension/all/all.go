// Package all imports all built-in glossd extensions.
// Import this package to register all built-in commands.
package all

import (
	// Each registers itself via init()
	_ "github.com/jpl-au/glossd/extension/core"
	_ "github.com/jpl-au/glossd/extension/glossary"
	_ "github.com/jpl-au/glossd/extension/search"
)
