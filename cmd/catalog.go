package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect lesson catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List levels and lessons in the active catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cat, err := loadCatalog(cfg.CatalogPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, level := range cat.Levels() {
			fmt.Fprintf(out, "%s\n", level.Title)
			for _, l := range level.Lessons {
				fmt.Fprintf(out, "  %2d  %-32s %2d words\n", l.ID, l.Title, len(l.Vocabulary))
			}
		}
		fmt.Fprintf(out, "\n%d lessons, %d words, %d cultural facts\n",
			cat.TotalLessons(), cat.TotalVocabulary(), len(cat.CulturalFacts()))
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [--file FILE]",
	Short: "Check a catalog file against the schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		switch {
		case path != "":
		case len(args) == 1:
			path = args[0]
		default:
			path, _ = cmd.Flags().GetString("catalog")
		}

		cat, err := loadCatalog(path)
		if err != nil {
			return err
		}
		name := path
		if name == "" {
			name = "built-in catalog"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d lessons, %d words)\n", name, cat.TotalLessons(), cat.TotalVocabulary())
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)

	catalogValidateCmd.Flags().String("file", "", "Catalog file to validate (defaults to --catalog or the built-in catalog)")
}
