package cli

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mjenior/pasteprompt/config"
	"github.com/mjenior/pasteprompt/prompts"
)

var listVerbose bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured prompts",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listVerbose, "verbose", "v", false, "show descriptions and content preview")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	path, err := config.ResolvePromptsPath(flagConfig)
	if err != nil {
		return err
	}

	collection, err := prompts.Load(path)
	if err != nil {
		return err
	}

	categorized := make(map[string][]prompts.Prompt)
	for _, p := range collection {
		category := p.Category
		if category == "" {
			category = "General"
		}
		categorized[category] = append(categorized[category], p)
	}

	categories := make([]string, 0, len(categorized))
	for c := range categorized {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	cmd.Printf("%d prompts in %s\n", len(collection), path)
	for _, category := range categories {
		entries := categorized[category]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

		cmd.Printf("\n%s\n", category)
		for _, p := range entries {
			cmd.Printf("  %-20s %s\n", p.Key, p.MenuName())
			if listVerbose {
				if p.Description != "" {
					cmd.Printf("  %20s %s\n", "", dimStyle.Render(p.Description))
				}
				cmd.Printf("  %20s %s\n", "", dimStyle.Render(preview(p.Content, 70)))
			}
		}
	}
	return nil
}

func preview(content string, max int) string {
	flat := strings.Join(strings.Fields(content), " ")
	if len(flat) <= max {
		return flat
	}
	return flat[:max] + "…"
}
