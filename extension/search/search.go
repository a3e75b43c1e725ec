// Package search provides the glossary search command and the highlight MCP
// tool. Registers commands: search.
package search

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/glossd/cmd"
	"github.com/jpl-au/glossd/extension"
	"github.com/jpl-au/glossd/internal/config"
	"github.com/jpl-au/glossd/internal/format"
	"github.com/jpl-au/glossd/internal/highlight"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/jpl-au/glossd/internal/search"
	"github.com/jpl-au/glossd/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service for search operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the search command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newSearchCmd()}
}

// Terminal highlight markers: bold on, bold off.
const (
	ansiOpen  = "\x1b[1m"
	ansiClose = "\x1b[22m"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <phrase...>",
		Short: "Search glossary terms and definitions",
		Long: `Search approved entries by term, definition and alias.

  glossd search osmosis              # substring match
  glossd search -w cat               # whole word: not "catalyst"
  glossd search cell wall --page 2   # second page of results
  glossd search -c 4 membrane        # only collection 4
  glossd search --course 12 enzyme   # collections of course 12

Matches are highlighted. On a terminal results are rendered as markdown;
use --raw for plain text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runSearch,
	}
	c.Flags().BoolP(extension.FlagWholeWord, "w", false, "Match whole words only")
	c.Flags().IntP(extension.FlagPage, "p", 1, "Result page, counting from 1")
	c.Flags().Int64P(extension.FlagCollection, "c", 0, "Only search this collection id")
	c.Flags().Int64(extension.FlagCourse, 0, "Only search collections of this course")
	c.Flags().Bool(extension.FlagRaw, false, "Plain text output even on a terminal")
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	wholeWord, _ := c.Flags().GetBool(extension.FlagWholeWord)
	page, _ := c.Flags().GetInt(extension.FlagPage)
	coll, _ := c.Flags().GetInt64(extension.FlagCollection)
	course, _ := c.Flags().GetInt64(extension.FlagCourse)
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	req := search.Request{
		Query:        strings.Join(args, " "),
		WholeWord:    wholeWord,
		Page:         max(page, 1) - 1,
		CollectionID: coll,
		OwnerScopeID: course,
	}

	res, err := e.svc.Search(c.Context(), req)

	b := log.Event("search:search", "search").
		Author(cmd.Author()).
		Query(req.Query).
		Detail("whole_word", wholeWord).
		Detail("page", req.Page)
	if res != nil {
		b = b.Count(res.Total).Detail("scope", res.Scope.String())
	}
	b.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search %q: %w", req.Query, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}

	if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := glamour.Render(format.Markdown(res), "dark"); err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
		h := highlight.New(res.Query, res.WholeWord, highlight.WithMarkers(ansiOpen, ansiClose))
		return format.Results(cmd.Out(), res, h)
	}

	h := highlight.New(res.Query, res.WholeWord)
	return format.Results(cmd.Out(), res, h)
}

// MCPTools returns glossd_highlight, which marks a query's matches in
// arbitrary text the way search results are marked.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{{
		Tool: mcp.NewTool("glossd_highlight",
			mcp.WithDescription("Wrap every match of a search phrase in text with <mark> tags, using the same matching rules as glossd_search."),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text to highlight")),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search phrase")),
			mcp.WithBoolean("whole_word", mcp.Description("Match whole words only")),
		),
		Handler: highlightTool,
	}}
}

func highlightTool(_ context.Context, _ extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil //nolint:nilerr
	}
	q, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}
	ww := req.GetBool("whole_word", false)

	out := highlight.Highlight(text, q, ww)

	log.Event("mcp:glossd_highlight", "highlight").Author("mcp").Query(q).Write(nil)

	return mcp.NewToolResultText(out), nil
}
