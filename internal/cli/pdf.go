package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicepad/internal/render"
)

// NewPDFCommand creates the pdf command: render the current document to a
// PDF file, the CLI counterpart of the editor's print action.
func NewPDFCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pdf [path]",
		Short: "Render the current invoice as a PDF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			snap := e.sess.Snapshot()
			path := fmt.Sprintf("invoice-%s.pdf", snap.Invoice.InvoiceInfo.Number)
			if len(args) == 1 {
				path = args[0]
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create pdf file: %w", err)
			}
			defer f.Close()

			if err := render.PDF(snap.Invoice, f); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
