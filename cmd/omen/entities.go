// Entities command lists everything registered in the entity registry.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "List registered entities",
	Long: `Entities lists every class and interface in the registry, including
the built-in collection classes and the attribute interface.

Example:
  omen entities
  omen entities --json`,
	Args: cobra.NoArgs,
	RunE: runEntities,
}

// entityRow is the JSON shape of one entities listing line.
type entityRow struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Parent    string `json:"parent,omitempty"`
	Protected bool   `json:"protected,omitempty"`
}

func runEntities(cmd *cobra.Command, args []string) error {
	rows := make([]entityRow, 0)
	for _, e := range registry.Entities() {
		row := entityRow{Name: e.Name(), Kind: e.Kind(), Protected: e.Protected()}
		if p := e.Parent(); p != nil {
			row.Parent = p.Name()
		}
		rows = append(rows, row)
	}

	if flagJSON {
		return printJSON(rows)
	}

	for _, row := range rows {
		line := fmt.Sprintf("%-12s %s", row.Kind, row.Name)
		if row.Parent != "" {
			line += " : " + row.Parent
		}
		if row.Protected {
			line += " (protected)"
		}
		fmt.Println(line)
	}
	return nil
}
