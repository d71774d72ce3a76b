package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/ui/theme"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate concept catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a catalog file for schema and graph errors",
	Long: "Validate a catalog JSON file: required fields, units, difficulty range,\n" +
		"unknown or duplicate IDs and prerequisite cycles. Without a path the\n" +
		"embedded catalog is checked.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		cat, err := catalog.Load(path)
		if err != nil {
			return err
		}
		if err := cat.Validate(); err != nil {
			return err
		}

		fmt.Println(theme.Correct.Render("✓ catalog is valid"))
		for _, u := range catalog.AllUnits() {
			fmt.Printf("  %-24s %3d concepts\n", catalog.UnitDisplayName(u), len(cat.ByUnit(u)))
		}
		fmt.Printf("  %-24s %3d\n", "Entry points", len(cat.Roots()))
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active catalog as JSON in study order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cat.TopologicalOrder())
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogExportCmd)
}
