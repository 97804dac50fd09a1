// Link commands for the seam CLI: list, inspect, create, edit, and remove
// the links of the session's collection.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/seam/pkg/linker"
	"github.com/mesh-intelligence/seam/pkg/types"
)

var (
	flagLinkCapability string
	flagLinkSide       int
	flagLinkSlot       int
	flagLinkAttr       int
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage the session's attribute links",
}

var linkAddCmd = &cobra.Command{
	Use:   "add <dataset1> <attr1> <dataset2> <attr2>",
	Short: "Add a direct pairwise link between two attributes",
	Long: `Add creates a pairwise link equating one attribute of each dataset.

Example:
  seam link add catalog ra observations right_ascension`,
	Args: cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openSession()
		if err != nil {
			fail(exitSysError, "link add", err)
		}
		defer s.close()

		data1, err := datasetByLabel(s, args[0])
		if err != nil {
			fail(exitUserError, "link add", err)
		}
		attr1, err := attributeByLabel(data1, args[1])
		if err != nil {
			fail(exitUserError, "link add", err)
		}
		data2, err := datasetByLabel(s, args[2])
		if err != nil {
			fail(exitUserError, "link add", err)
		}
		attr2, err := attributeByLabel(data2, args[3])
		if err != nil {
			fail(exitUserError, "link add", err)
		}

		if err := s.eng.AddPair(data1, attr1, data2, attr2); err != nil {
			fail(exitSysError, "link add", err)
		}
		if err := s.save(); err != nil {
			fail(exitSysError, "link add", err)
		}
		fmt.Printf("added link at position %d\n", len(s.eng.Collection().Links())-1)
	},
}

var linkCreateCmd = &cobra.Command{
	Use:   "create <dataset1> <dataset2>",
	Short: "Create a link from a capability",
	Long: `Create stages a new link between two datasets from a catalog
capability and commits it. Slots default to each dataset's leading
attributes; adjust them afterwards with "seam link edit".

Example:
  seam link create catalog observations --capability identity
  seam link create catalog observations --capability ICRS_to_Galactic`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if flagLinkCapability == "" {
			fmt.Fprintln(os.Stderr, "link create: --capability is required")
			os.Exit(exitUserError)
		}

		s, err := openSession()
		if err != nil {
			fail(exitSysError, "link create", err)
		}
		defer s.close()

		data1, err := datasetByLabel(s, args[0])
		if err != nil {
			fail(exitUserError, "link create", err)
		}
		data2, err := datasetByLabel(s, args[1])
		if err != nil {
			fail(exitUserError, "link create", err)
		}
		cap, err := findCapability(s, flagLinkCapability)
		if err != nil {
			fail(exitUserError, "link create", err)
		}

		editor := s.eng.NewEditor()
		editor.SetDatasets(data1, data2)
		if _, err := editor.NewLink(cap); err != nil {
			fail(exitUserError, "link create", err)
		}
		if err := editor.Commit(); err != nil {
			fail(exitUserError, "link create", err)
		}
		if err := s.save(); err != nil {
			fail(exitSysError, "link create", err)
		}
		fmt.Printf("created link at position %d\n", len(s.eng.Collection().Links())-1)
	},
}

var linkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the session's links in collection order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openSession()
		if err != nil {
			fail(exitSysError, "link list", err)
		}
		defer s.close()

		links := s.eng.Collection().Links()
		if flagJSON {
			out := make([]map[string]any, 0, len(links))
			for i, ln := range links {
				out = append(out, map[string]any{
					"index":   i,
					"link_id": ln.ID(),
					"kind":    ln.Kind(),
					"display": linker.DisplayString(ln),
				})
			}
			if err := printJSON(out); err != nil {
				fail(exitSysError, "link list", err)
			}
			return
		}
		for i, ln := range links {
			fmt.Printf("%d: %s\n", i, linker.DisplayString(ln))
		}
	},
}

var linkShowCmd = &cobra.Command{
	Use:   "show <index>",
	Short: "Show the editable structure of a link",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openSession()
		if err != nil {
			fail(exitSysError, "link show", err)
		}
		defer s.close()

		ln, _, err := linkAt(s, args[0])
		if err != nil {
			fail(exitUserError, "link show", err)
		}

		descriptor, ok := s.lnk.Describe(ln)
		if !ok {
			fmt.Printf("%s\n  (no editable structure)\n", linker.DisplayString(ln))
			return
		}
		if flagJSON {
			if err := printJSON(descriptor); err != nil {
				fail(exitSysError, "link show", err)
			}
			return
		}

		fmt.Println(linker.DisplayString(ln))
		switch {
		case descriptor.CoordinatePair:
			printSlots(" side 1", descriptor.Coords1)
			printSlots(" side 2", descriptor.Coords2)
		case descriptor.MultiParam:
			printSlots(" inputs", descriptor.Params)
			fmt.Printf(" output: %s\n", descriptor.Attr2Label)
		default:
			fmt.Printf(" side 1: %s\n", descriptor.Attr1Label)
			fmt.Printf(" side 2: %s\n", descriptor.Attr2Label)
		}
	},
}

var linkEditCmd = &cobra.Command{
	Use:   "edit <index>",
	Short: "Replace one attribute slot of a link",
	Long: `Edit rebuilds the link at the given position with one slot changed.
The rebuilt link is appended to the collection; its new position is
printed.

--side selects the dataset side (1 or 2), --slot the position within
that side for multi-slot links, and --attr the replacement attribute's
index within the side's dataset (see "seam link show" for options).

Example:
  seam link edit 0 --side 2 --attr 3
  seam link edit 1 --side 1 --slot 2 --attr 0`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openSession()
		if err != nil {
			fail(exitSysError, "link edit", err)
		}
		defer s.close()

		ln, _, err := linkAt(s, args[0])
		if err != nil {
			fail(exitUserError, "link edit", err)
		}

		position, err := s.lnk.ApplyEdit(ln, flagLinkSide, flagLinkSlot, flagLinkAttr)
		if err != nil {
			fail(exitUserError, "link edit", err)
		}
		if err := s.save(); err != nil {
			fail(exitSysError, "link edit", err)
		}
		fmt.Printf("link now at position %d\n", position)
	},
}

var linkRemoveCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove the link at the given position",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openSession()
		if err != nil {
			fail(exitSysError, "link remove", err)
		}
		defer s.close()

		ln, index, err := linkAt(s, args[0])
		if err != nil {
			fail(exitUserError, "link remove", err)
		}
		if err := s.lnk.Remove(ln); err != nil {
			fail(exitSysError, "link remove", err)
		}
		if err := s.save(); err != nil {
			fail(exitSysError, "link remove", err)
		}
		fmt.Printf("removed link %d\n", index)
	},
}

func printSlots(heading string, slots []types.SlotDescriptor) {
	fmt.Printf("%s:\n", heading)
	for _, slot := range slots {
		fmt.Printf("  %s = %s (index %d)\n", slot.Name, slot.Label, slot.Selected)
	}
}

func init() {
	linkCreateCmd.Flags().StringVar(&flagLinkCapability, "capability", "", "capability name from \"seam capabilities\"")
	linkEditCmd.Flags().IntVar(&flagLinkSide, "side", 1, "dataset side to edit (1 or 2)")
	linkEditCmd.Flags().IntVar(&flagLinkSlot, "slot", 0, "slot position within the side (multi-slot links)")
	linkEditCmd.Flags().IntVar(&flagLinkAttr, "attr", 0, "replacement attribute index within the side's dataset")

	linkCmd.AddCommand(linkAddCmd)
	linkCmd.AddCommand(linkCreateCmd)
	linkCmd.AddCommand(linkListCmd)
	linkCmd.AddCommand(linkShowCmd)
	linkCmd.AddCommand(linkEditCmd)
	linkCmd.AddCommand(linkRemoveCmd)
}
