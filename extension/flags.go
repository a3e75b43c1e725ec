// flags.go defines constants for all CLI flag names.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
// These are used with cobra's Flags().Type() and GetType() methods.
const (
	// Boolean flags

	FlagDryRun    = "dry-run"    // Preview without making changes
	FlagLocal     = "local"      // Use local scope (gitignored)
	FlagPending   = "pending"    // Store entries unapproved
	FlagRaw       = "raw"        // Plain output even on a terminal
	FlagShare     = "share"      // Mark as shared (committed)
	FlagStats     = "stats"      // Show database statistics
	FlagWholeWord = "whole-word" // Match whole words only

	// String flags

	FlagAddr       = "addr"       // Listen address
	FlagAlias      = "alias"      // Keyword alias (repeatable)
	FlagCollection = "collection" // Collection id or name
	FlagFormat     = "format"     // Definition format

	// Integer flags

	FlagCourse = "course" // Owner scope (course) id
	FlagPage   = "page"   // Result page
)
