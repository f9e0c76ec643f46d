package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicepad/internal/interchange"
)

// NewExportCommand creates the export command: write the current document to
// a portable JSON file.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export the current invoice as a JSON file",
		Long: `Export the current invoice as a JSON file.

Without an argument the file is named invoice-<number>.json in the current
directory, matching the editor's download name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			snap := e.sess.Snapshot()
			data, err := interchange.Export(snap.Invoice)
			if err != nil {
				return err
			}

			path := interchange.FileName(snap.Invoice)
			if len(args) == 1 {
				path = args[0]
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
