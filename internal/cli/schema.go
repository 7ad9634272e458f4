package cli

import (
	"fmt"
	"os"

	"github.com/growthcast/growthcast/internal/model"
	"github.com/spf13/cobra"
)

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Output the JSON schema of the model artifact formats",
	Long: `Output the JSON schema of the linear regression, standard scaler and k-means
artifact documents, for use by the export side of the training pipeline.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		schemaBytes, err := model.SchemaJSON()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error generating schema: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(schemaBytes))
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
