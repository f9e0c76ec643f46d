package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"invoicepad/internal/editor"
)

// NewResetCommand creates the reset command: discard the stored document and
// restore the built-in default.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the current invoice with the built-in default",
		Long: `Replace the current invoice with the built-in default, discarding all
current content. This is destructive and requires --yes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := e.sess.Reset(cmd.Context(), yes); err != nil {
				if errors.Is(err, editor.ErrNotConfirmed) {
					return fmt.Errorf("reset discards all current content; re-run with --yes to confirm")
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "invoice reset to default")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
