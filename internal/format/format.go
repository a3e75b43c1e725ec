// Package format provides output formatting for CLI display.
//
// Commands hand their results here so that column alignment, paging
// footers and the markdown fed to glamour are rendered the same way
// everywhere.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/glossd/internal/highlight"
	"github.com/jpl-au/glossd/internal/search"
	"github.com/jpl-au/glossd/internal/store"
)

// Strings shown in place of results.
const (
	HelpText      = "Enter one or more words to search the glossary."
	NoResultsText = "No matching entries were found."
)

// Collections prints collections with owner scope and approved entry count.
func Collections(w io.Writer, colls []store.Collection) error {
	if len(colls) == 0 {
		return nil
	}

	maxID := 2 // minimum "ID"
	for _, c := range colls {
		if n := len(fmt.Sprint(c.ID)); n > maxID {
			maxID = n
		}
	}

	fmt.Fprintf(w, "%*s  %6s  %7s  %s\n", maxID, "ID", "COURSE", "ENTRIES", "NAME")
	for _, c := range colls {
		owner := "-"
		if c.OwnerScopeID != 0 {
			owner = fmt.Sprint(c.OwnerScopeID)
		}
		fmt.Fprintf(w, "%*d  %6s  %7d  %s\n", maxID, c.ID, owner, c.Entries, c.Name)
	}
	return nil
}

// Results prints a result page as plain text. Matches in each term and
// definition are wrapped with the highlighter's markers.
func Results(w io.Writer, res *search.Result, h *highlight.Highlighter) error {
	switch {
	case res.Help:
		fmt.Fprintln(w, HelpText)
		return nil
	case res.NoResults():
		fmt.Fprintln(w, NoResultsText)
		return nil
	}

	for i, it := range res.Items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  [%s]\n", h.Mark(it.Term), it.CollectionName)
		for _, line := range strings.Split(h.Mark(it.Definition), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, Footer(res))
	return nil
}

// Private-use runes stand in for markers until markdown escaping is done.
const (
	openMark  = "\uE000"
	closeMark = "\uE001"
)

// Markdown renders a result page as markdown for terminal rendering with
// glamour. Matches are shown in bold.
func Markdown(res *search.Result) string {
	switch {
	case res.Help:
		return HelpText + "\n"
	case res.NoResults():
		return NoResultsText + "\n"
	}

	h := highlight.New(res.Query, res.WholeWord, highlight.WithMarkers(openMark, closeMark))
	md := func(s string) string {
		s = markdownSpecial.Replace(h.Mark(s))
		return strings.NewReplacer(openMark, "**", closeMark, "**").Replace(s)
	}

	var b strings.Builder
	for _, it := range res.Items {
		fmt.Fprintf(&b, "### %s\n\n", md(it.Term))
		fmt.Fprintf(&b, "*%s*\n\n", markdownSpecial.Replace(it.CollectionName))
		fmt.Fprintf(&b, "%s\n\n", md(it.Definition))
	}
	fmt.Fprintf(&b, "---\n\n%s\n", Footer(res))
	return b.String()
}

// markdownSpecial escapes characters that would otherwise be read as markup.
var markdownSpecial = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`, "[", `\[`, "]", `\]`, "<", `\<`,
)

// Footer describes the current page, e.g. "Page 2 of 3 (25 matches)".
func Footer(res *search.Result) string {
	noun := "matches"
	if res.Total == 1 {
		noun = "match"
	}
	pages := res.Pages()
	if pages == 0 {
		pages = 1
	}
	s := fmt.Sprintf("Page %d of %d (%d %s)", res.Page+1, pages, res.Total, noun)
	if res.HasNext() {
		s += fmt.Sprintf(", next: --page %d", res.Page+2)
	}
	return s
}

// Stats prints aggregate counts and the search configuration in use.
func Stats(w io.Writer, location string, dialect store.Dialect, strategy string, st *store.Stats) error {
	rows := [][2]string{
		{"Database", location},
		{"Driver", string(dialect)},
		{"Whole-word", strategy},
		{"Collections", fmt.Sprint(st.Collections)},
		{"Entries", fmt.Sprintf("%d (%d approved)", st.Entries, st.Approved)},
		{"Aliases", fmt.Sprint(st.Aliases)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-12s %s\n", r[0]+":", r[1])
	}
	return nil
}
