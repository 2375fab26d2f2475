package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/exiftrans/internal/registry"
)

var registryCategory string

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect the implementation registry",
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List implementation registry entries",
	Long: `list dumps the loaded implementation registry: every known Perl
callable, its category, and the Rust path a deferred expression should
call instead.`,
	RunE: runRegistryList,
}

func init() {
	rootCmd.AddCommand(registryCmd)
	registryCmd.AddCommand(registryListCmd)
	registryListCmd.Flags().StringVar(&registryCategory, "category", "", "filter by category: builtin, module, or script")
}

func runRegistryList(_ *cobra.Command, _ []string) error {
	var entries []registry.Entry
	switch registryCategory {
	case "":
		entries = registry.All()
	case "builtin":
		entries = registry.ByCategory(registry.Builtin)
	case "module":
		entries = registry.ByCategory(registry.ModuleFunction)
	case "script":
		entries = registry.ByCategory(registry.CustomScript)
	default:
		return fmt.Errorf("unknown category %q (want builtin, module, or script)", registryCategory)
	}

	for _, e := range entries {
		fmt.Printf("%-45s %-8s %s\n", e.Key, e.Category, e.QualifiedName())
	}
	fmt.Printf("\n%d entries\n", len(entries))
	return nil
}
