// Catalog command exports a registry snapshot to a SQLite database.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/omen/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Export the registry to a SQLite catalog",
	Long: `Catalog writes a snapshot of every registered entity, with its
inheritance links, function signatures, and interface properties, to a SQLite
database file. An existing catalog at the target path is replaced.

The target follows the precedence chain: --catalog flag > config.yaml
catalog_path > OMEN_CATALOG_DIR env > $(CWD)/.omen/catalog.db.

Example:
  omen catalog
  omen catalog /tmp/registry.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		flagCatalog = args[0]
	}
	path, err := resolveCatalogPath()
	if err != nil {
		return fmt.Errorf("resolve catalog path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure catalog dir: %w", err)
	}

	if err := catalog.Export(path, registry); err != nil {
		return fmt.Errorf("export catalog: %w", err)
	}

	if flagJSON {
		return printJSON(map[string]string{"catalog": path})
	}
	fmt.Println("catalog written to", path)
	return nil
}
