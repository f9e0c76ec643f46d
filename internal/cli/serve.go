package cli

import (
	"github.com/spf13/cobra"

	"invoicepad/internal/server"
)

// NewServeCommand creates the serve command: the HTTP editing surface.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP invoice editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if addr == "" {
				addr = e.cfg.ListenAddr
			}
			return server.New(e.sess, e.log).Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
