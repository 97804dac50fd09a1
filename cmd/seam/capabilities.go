// Capabilities command lists the cached capability catalog by category.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "List available link capabilities by category",
	Long: `Capabilities lists the catalog of link types that can be created:
the General category first (direct pairing and identity), then the
remaining categories sorted by name.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openSession()
		if err != nil {
			fail(exitSysError, "capabilities", err)
		}
		defer s.close()

		categories, err := s.lnk.Categories()
		if err != nil {
			fail(exitSysError, "capabilities", err)
		}
		byCategory, err := s.lnk.CapabilitiesByCategory()
		if err != nil {
			fail(exitSysError, "capabilities", err)
		}

		if flagJSON {
			out := make([]map[string]any, 0, len(categories))
			for _, category := range categories {
				entries := make([]map[string]string, 0, len(byCategory[category]))
				for _, cap := range byCategory[category] {
					entries = append(entries, map[string]string{
						"display":     cap.Display,
						"kind":        cap.Kind,
						"description": cap.Description,
					})
				}
				out = append(out, map[string]any{"category": category, "entries": entries})
			}
			if err := printJSON(out); err != nil {
				fail(exitSysError, "capabilities", err)
			}
			return
		}

		for _, category := range categories {
			fmt.Println(category)
			for _, cap := range byCategory[category] {
				if cap.Description != "" {
					fmt.Printf("  %s - %s\n", cap.Display, cap.Description)
				} else {
					fmt.Println("  " + cap.Display)
				}
			}
		}
	},
}
