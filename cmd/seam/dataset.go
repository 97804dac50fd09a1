// Dataset commands for the seam CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/seam/pkg/types"
)

var flagDatasetAttrs []string

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage session datasets",
}

var datasetAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a dataset with its attributes to the session",
	Long: `Add creates a dataset and registers its attributes.

Example:
  seam dataset add catalog --attrs ra,dec,flux`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openSession()
		if err != nil {
			fail(exitSysError, "dataset add", err)
		}
		defer s.close()

		if _, ok := s.eng.DatasetByLabel(args[0]); ok {
			fmt.Fprintf(os.Stderr, "dataset %q already exists\n", args[0])
			os.Exit(exitUserError)
		}

		d, err := s.eng.NewDataset(args[0])
		if err != nil {
			fail(exitSysError, "dataset add", err)
		}
		for _, label := range flagDatasetAttrs {
			label = strings.TrimSpace(label)
			if label == "" {
				continue
			}
			if _, err := s.eng.AddAttribute(d, label); err != nil {
				fail(exitSysError, "dataset add", err)
			}
		}

		if err := s.save(); err != nil {
			fail(exitSysError, "dataset add", err)
		}
		fmt.Printf("added dataset %q with %d attributes\n", d.Label, len(d.Attributes))
	},
}

var datasetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List session datasets and their attributes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openSession()
		if err != nil {
			fail(exitSysError, "dataset list", err)
		}
		defer s.close()

		datasets := s.eng.Datasets()
		if flagJSON {
			out := make([]map[string]any, 0, len(datasets))
			for _, d := range datasets {
				out = append(out, datasetJSON(d))
			}
			if err := printJSON(out); err != nil {
				fail(exitSysError, "dataset list", err)
			}
			return
		}
		for _, d := range datasets {
			fmt.Println(d.Label)
			for _, a := range d.Attributes {
				fmt.Println("  " + a.DisplayLabel())
			}
		}
	},
}

// datasetJSON flattens a dataset for output; the attribute back-pointers
// make the raw struct a marshal cycle.
func datasetJSON(d *types.Dataset) map[string]any {
	attrs := make([]string, 0, len(d.Attributes))
	for _, a := range d.Attributes {
		attrs = append(attrs, a.DisplayLabel())
	}
	return map[string]any{"dataset_id": d.DatasetID, "label": d.Label, "attributes": attrs}
}

func init() {
	datasetAddCmd.Flags().StringSliceVar(&flagDatasetAttrs, "attrs", nil, "comma-separated attribute names")

	datasetCmd.AddCommand(datasetAddCmd)
	datasetCmd.AddCommand(datasetListCmd)
}
