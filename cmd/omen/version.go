// Version command for the omen CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/omen/pkg/omen"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the omen version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("omen", omen.Version)
	},
}
