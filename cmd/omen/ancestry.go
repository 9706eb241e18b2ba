// Ancestry command walks an entity's inheritance chain and answers is-a
// queries.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var ancestryCmd = &cobra.Command{
	Use:   "ancestry <entity> [name]",
	Short: "Print an entity's inheritance chain or test descent",
	Long: `Ancestry walks the parent chain of a registered entity from the entity
itself up to its root ancestor. With a second argument it instead reports
whether the entity is, inherits, or implements the named entity.

Example:
  omen ancestry LinkedList
  omen ancestry LinkedList ICollection`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAncestry,
}

func runAncestry(cmd *cobra.Command, args []string) error {
	e, err := lookupEntity(args[0])
	if err != nil {
		return err
	}

	if len(args) == 2 {
		isA := e.IsTypeOf(args[1])
		if flagJSON {
			return printJSON(map[string]bool{"is_type_of": isA})
		}
		fmt.Println(isA)
		return nil
	}

	chain := make([]string, 0)
	for cur := e; cur != nil; cur = cur.Parent() {
		chain = append(chain, cur.Name())
	}

	if flagJSON {
		return printJSON(chain)
	}

	fmt.Println(strings.Join(chain, " -> "))
	return nil
}
