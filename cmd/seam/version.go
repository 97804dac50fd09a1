// Version command for the seam CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/seam/pkg/seam"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the seam version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("seam", seam.Version)
	},
}
