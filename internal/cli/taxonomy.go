package cli

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/voiceprofile/internal/config"
	"github.com/vijay-prabhu/voiceprofile/internal/output"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Show the interest taxonomy in use",
	Long: `Show the categories, keyword counts, boosters and social/activity axes of
the taxonomy. This is the built-in taxonomy unless [taxonomy] path is set.

Examples:
  voiceprofile taxonomy
  voiceprofile taxonomy -o yaml
  voiceprofile taxonomy export > ~/.config/voiceprofile/taxonomy.toml`,
	Args: cobra.NoArgs,
	RunE: runTaxonomy,
}

var taxonomyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the taxonomy as an editable TOML file to stdout",
	Args:  cobra.NoArgs,
	RunE:  runTaxonomyExport,
}

func init() {
	rootCmd.AddCommand(taxonomyCmd)
	taxonomyCmd.AddCommand(taxonomyExportCmd)
}

func runTaxonomy(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	tax, err := loadTaxonomy(cfg)
	if err != nil {
		return err
	}

	if outputFmt == "table" {
		return output.Table(tax)
	}
	return output.Output(outputFmt, tax.Export())
}

func runTaxonomyExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	tax, err := loadTaxonomy(cfg)
	if err != nil {
		return err
	}

	data, err := toml.Marshal(tax.Export())
	if err != nil {
		return fmt.Errorf("failed to encode taxonomy: %w", err)
	}

	_, err = os.Stdout.Write(data)
	return err
}
