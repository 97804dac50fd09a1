// Attribute commands for the seam CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var attrCmd = &cobra.Command{
	Use:   "attr",
	Short: "Manage dataset attributes",
}

var attrAddCmd = &cobra.Command{
	Use:   "add <dataset> <name>",
	Short: "Add an attribute to an existing dataset",
	Long: `Add registers a new attribute on a dataset. The attribute is appended
after the dataset's existing attributes.

Example:
  seam attr add catalog parallax`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openSession()
		if err != nil {
			fail(exitSysError, "attr add", err)
		}
		defer s.close()

		d, err := datasetByLabel(s, args[0])
		if err != nil {
			fail(exitUserError, "attr add", err)
		}
		if _, err := attributeByLabel(d, args[1]); err == nil {
			fmt.Fprintf(os.Stderr, "attribute %q already exists in dataset %q\n", args[1], d.Label)
			os.Exit(exitUserError)
		}

		if _, err := s.eng.AddAttribute(d, args[1]); err != nil {
			fail(exitSysError, "attr add", err)
		}
		if err := s.save(); err != nil {
			fail(exitSysError, "attr add", err)
		}
		fmt.Printf("added attribute %q to dataset %q\n", args[1], d.Label)
	},
}

func init() {
	attrCmd.AddCommand(attrAddCmd)
}
