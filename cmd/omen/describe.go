// Describe command prints the full declaration surface of one entity.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/omen/pkg/object"
)

var describeCmd = &cobra.Command{
	Use:   "describe <entity>",
	Short: "Show an entity's functions, properties, and interfaces",
	Long: `Describe prints the declaration surface of a registered class or
interface: its parent, implemented interfaces, declared function signatures,
and interface properties.

Example:
  omen describe List
  omen describe IAttribute --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

// entityDetail is the JSON shape of a describe result.
type entityDetail struct {
	Name       string            `json:"name"`
	Kind       string            `json:"kind"`
	Parent     string            `json:"parent,omitempty"`
	Interfaces []string          `json:"interfaces,omitempty"`
	Protected  bool              `json:"protected,omitempty"`
	Functions  []string          `json:"functions,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

func runDescribe(cmd *cobra.Command, args []string) error {
	e, err := lookupEntity(args[0])
	if err != nil {
		return err
	}

	detail := describeEntity(e)
	if flagJSON {
		return printJSON(detail)
	}

	fmt.Printf("%s %s", detail.Kind, detail.Name)
	if detail.Parent != "" {
		fmt.Printf(" : %s", detail.Parent)
	}
	fmt.Println()
	for _, name := range detail.Interfaces {
		fmt.Println("  implements", name)
	}
	for _, sig := range detail.Functions {
		fmt.Println("  fn", sig)
	}
	for _, name := range e.PropertyNames() {
		fmt.Println("  prop", name, detail.Properties[name])
	}
	return nil
}

func describeEntity(e *object.Entity) entityDetail {
	detail := entityDetail{
		Name:      e.Name(),
		Kind:      e.Kind(),
		Protected: e.Protected(),
	}
	if p := e.Parent(); p != nil {
		detail.Parent = p.Name()
	}
	for _, in := range e.Interfaces() {
		detail.Interfaces = append(detail.Interfaces, in.Name())
	}
	for _, fname := range e.FunctionNames() {
		fn, ok := e.Function(fname)
		if !ok {
			continue
		}
		detail.Functions = append(detail.Functions, renderSignature(fname, fn))
	}
	props := e.PropertyNames()
	if len(props) > 0 {
		detail.Properties = make(map[string]string, len(props))
		for _, name := range props {
			if c, ok := e.Property(name); ok {
				detail.Properties[name] = c.String()
			}
		}
	}
	return detail
}
