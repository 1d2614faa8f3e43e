package cmd

import (
	"fmt"

	"signyard/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the catalog and deployments into an empty store.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, _ := cmd.Flags().GetString("file")
			force, _ := cmd.Flags().GetBool("force")

			data, err := loadSeed(file)
			if err != nil {
				return err
			}

			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.container.Seeder.Seed(cmd.Context(), data, force)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Skipped {
				fmt.Fprintln(out, "store already has a catalog, nothing seeded (use --force to replace it)")
				return nil
			}
			fmt.Fprintf(out, "seeded %d catalog items and %d deployments (%d already present)\n",
				result.CatalogItems, result.Deployments, result.ExistingDeployments)
			return nil
		},
	}
	seedCmd.Flags().String("file", "", "YAML seed file (defaults to the bundled demo data)")
	seedCmd.Flags().Bool("force", false, "Replace an existing catalog")

	return seedCmd
}

func loadSeed(file string) (*seed.Data, error) {
	if file == "" {
		return seed.Default()
	}
	return seed.LoadFile(file)
}
