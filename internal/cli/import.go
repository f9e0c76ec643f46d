package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicepad/internal/interchange"
)

// NewImportCommand creates the import command: replace the stored document
// with the contents of a JSON file.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Replace the current invoice from a JSON file",
		Long: `Replace the current invoice from a JSON file.

The file must parse as the export format. On parse failure the stored
document is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}

			inv, err := interchange.Import(data)
			if err != nil {
				return err
			}

			e, cleanup, envErr := openEnv(cmd.Context(), rootOpts)
			if envErr != nil {
				return envErr
			}
			defer cleanup()

			e.sess.Replace(cmd.Context(), inv)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", args[0])
			return nil
		},
	}
}
