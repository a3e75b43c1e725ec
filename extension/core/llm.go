// llm.go implements the "glossd llm" command: a short onboarding page for
// AI assistants, read from guide/llm.md.

package core

import (
	"github.com/jpl-au/glossd/cmd"
	"github.com/jpl-au/glossd/guide"
	"github.com/spf13/cobra"
)

func newLlmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "llm",
		Short: "Getting started guide for LLMs",
		Long:  `Quick reference for LLMs to discover how to look terms up and add them.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			content, err := guide.Get("llm")
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			printMarkdown(content)
			return nil
		},
	}
}
