// Root command for the omen CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/omen/internal/errlog"
	"github.com/mesh-intelligence/omen/internal/paths"
	"github.com/mesh-intelligence/omen/pkg/collections"
	"github.com/mesh-intelligence/omen/pkg/object"
	"github.com/mesh-intelligence/omen/pkg/omen"
)

// Global flag values.
var (
	flagConfigDir string
	flagCatalog   string
	flagJSON      bool
	flagSilent    bool
)

// registry holds the entity registry built on startup. All subcommands
// operate against it.
var registry *object.Registry

// configCatalogPath holds the catalog_path value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configCatalogPath string

var rootCmd = &cobra.Command{
	Use:     "omen",
	Short:   "Omen is a runtime class and interface registry",
	Version: omen.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configCatalogPath = cfg.GetString(cfgKeyCatalogPath)

		log := errlog.New()
		log.SetSilent(flagSilent || cfg.GetBool(cfgKeySilent))

		registry = object.NewRegistry(object.WithLog(log))
		return collections.Install(registry)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "catalog database file (default: $(CWD)/.omen/catalog.db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSilent, "silent", false, "record registry errors instead of returning them")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(entitiesCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(ancestryCmd)
	rootCmd.AddCommand(catalogCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence chain: --config-dir flag > OMEN_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveCatalogPath returns the catalog file location following the
// precedence chain: --catalog flag > config.yaml catalog_path >
// OMEN_CATALOG_DIR env > $(CWD)/.omen/catalog.db.
func resolveCatalogPath() (string, error) {
	return paths.ResolveCatalogPath(flagCatalog, configCatalogPath)
}
