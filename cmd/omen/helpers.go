// Shared helpers for omen CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/omen/pkg/object"
	"github.com/mesh-intelligence/omen/pkg/typespec"
)

// printJSON marshals v with indentation and prints it.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// lookupEntity resolves an entity by name or returns a CLI-friendly error.
func lookupEntity(name string) (*object.Entity, error) {
	e := registry.Lookup(name)
	if e == nil {
		return nil, fmt.Errorf("unknown entity %q (run 'omen entities' for the registered names)", name)
	}
	return e, nil
}

// renderConstraints joins constraint declarations with commas, matching the
// form accepted by the declaration parser.
func renderConstraints(cs []typespec.Constraint) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ", ")
}

// renderSignature formats a declared function as name(params) -> returns.
func renderSignature(name string, fn *object.Function) string {
	sig := fmt.Sprintf("%s(%s)", name, renderConstraints(fn.Params()))
	if rets := fn.Returns(); len(rets) > 0 {
		sig += " -> " + renderConstraints(rets)
	}
	return sig
}
